package editor

import (
	"reflect"
	"slices"

	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/members"
)

// Auto edits a concrete type by laying out its serializable fields in
// declaration order, one indent level in from the slot.
type Auto struct {
	typ      reflect.Type
	newValue func() any
	fields   []string
}

// NewAuto builds the auto-generated editor for t.
func NewAuto(t reflect.Type, newValue func() any) *Auto {
	return &Auto{
		typ:      t,
		newValue: newValue,
		fields:   members.SerializableNames(t),
	}
}

// Type is the concrete type the editor keeps in its slot.
func (a *Auto) Type() reflect.Type { return a.typ }

// Fields lists the member names the editor draws.
func (a *Auto) Fields() []string { return slices.Clone(a.fields) }

// NewValue constructs a fresh occupant.
func (a *Auto) NewValue() any { return a.newValue() }

// Height sums the default height of every serializable field.
func (a *Auto) Height(s Surface, p field.Property) int {
	return RelativeFieldsHeight(s, p, a.fields)
}

// Render reconciles the slot occupant, then draws each field.
func (a *Auto) Render(s Surface, area layout.Rect, p field.Property) {
	if _, err := Reconcile(p, a.typ, a.newValue); err != nil {
		log.ErrorErr(log.CatDispatch, "reconcile failed", err, "path", p.PathString(), "type", a.typ.String())
		return
	}
	s.Indent()
	RelativeFields(s, p, a.fields, area)
	s.Outdent()
}
