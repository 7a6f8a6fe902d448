package dispatch

import (
	"reflect"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
)

// SlotEditor draws Slot fields: it reads the persisted label from the
// slot's Editor member, runs the dispatcher on its Value member and writes
// the returned label back.
type SlotEditor struct {
	d *Dispatcher
}

// NewSlotEditor wraps d as a drawer for Slot fields.
func NewSlotEditor(d *Dispatcher) *SlotEditor {
	return &SlotEditor{d: d}
}

// Match reports whether fields of type t are drawn by this editor.
func (e *SlotEditor) Match(t reflect.Type) bool { return IsSlot(t) }

func (e *SlotEditor) Height(s editor.Surface, p field.Property) int {
	return e.d.Height(s, SlotBase(p.Type()), p.Child("Value"), label(p))
}

func (e *SlotEditor) Render(s editor.Surface, area layout.Rect, p field.Property) {
	prev := label(p)
	next := e.d.Render(s, area, SlotBase(p.Type()), p.Child("Value"), prev, p.DisplayName())
	if next == prev {
		return
	}
	if err := p.Child("Editor").Set(next); err != nil {
		log.ErrorErr(log.CatDispatch, "persisting editor label failed", err, "path", p.PathString())
	}
}

func label(p field.Property) string {
	s, _ := p.Child("Editor").Value().(string)
	return s
}
