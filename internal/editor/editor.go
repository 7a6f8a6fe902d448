// Package editor defines the capability every slot editor implements and
// the auto-generated editor synthesized for plain concrete types.
package editor

import (
	"reflect"

	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
)

// Surface is the set of layout primitives the host provides to editors.
// Calls happen inside one render pass, top to bottom.
type Surface interface {
	// LineHeight is the height of a single default line.
	LineHeight() int
	// FieldHeight is the default height needed to draw p.
	FieldHeight(p field.Property) int
	// Popup draws a labelled chooser and returns the selected index after
	// applying this pass's input.
	Popup(area layout.Rect, label string, selected int, options []string) int
	// Field draws p with the host's default drawer and writes back edits.
	Field(area layout.Rect, p field.Property)
	// Label draws static text.
	Label(area layout.Rect, text string)
	// Indent and Outdent change the indent level for subsequent draws.
	Indent()
	Outdent()
	// ContextAction attaches an action to the control drawn at area. link,
	// when set, is shown as a hyperlink in the hint line.
	ContextAction(area layout.Rect, label, link string, fn func())
}

// Editor is a strategy for editing one slot.
type Editor interface {
	// Height is the vertical space Render will use for p.
	Height(s Surface, p field.Property) int
	// Render draws the editing surface for p inside area.
	Render(s Surface, area layout.Rect, p field.Property)
}

// Constructor is implemented by hand-authored editors to build the slot
// occupant they edit.
type Constructor interface {
	NewValue() any
}

// Reconcile reconstructs the value at p with newValue unless it already
// holds exactly type t. It reports whether a new value was stored.
func Reconcile(p field.Property, t reflect.Type, newValue func() any) (bool, error) {
	cur := p.Value()
	if cur != nil && reflect.TypeOf(cur) == t {
		return false, nil
	}
	if err := p.Set(newValue()); err != nil {
		return false, err
	}
	return true, nil
}

// RelativeFields draws the named children of p one under another starting
// at area, and returns a single line just below the last one.
func RelativeFields(s Surface, p field.Property, names []string, area layout.Rect) layout.Rect {
	r := area.SingleLine(s.LineHeight())
	for _, name := range names {
		child := p.Child(name)
		h := s.FieldHeight(child)
		s.Field(r.SingleLine(h), child)
		r.Y += h
	}
	return r
}

// RelativeFieldsHeight is the total height RelativeFields will use.
func RelativeFieldsHeight(s Surface, p field.Property, names []string) int {
	total := 0
	for _, name := range names {
		total += s.FieldHeight(p.Child(name))
	}
	return total
}
