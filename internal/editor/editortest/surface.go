// Package editortest provides a recording Surface for editor and
// dispatcher tests.
package editortest

import (
	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
)

var _ editor.Surface = (*Surface)(nil)

// Call records one draw on the Surface.
type Call struct {
	Kind     string // "popup", "field", "label"
	Area     layout.Rect
	Path     string
	Text     string
	Indent   int
	Options  []string
	Selected int
}

// Action is a context action attached during a pass.
type Action struct {
	Area  layout.Rect
	Label string
	Link  string
	Run   func()
}

// Surface records draws. Popups return the next scripted choice, or the
// incoming selection when none is queued.
type Surface struct {
	Line    int
	Heights map[string]int
	Choices []int
	Calls   []Call
	Actions []Action

	indent int
}

// New returns a Surface with single-row lines.
func New() *Surface {
	return &Surface{Line: 1, Heights: map[string]int{}}
}

// Choose queues the index the next Popup call returns.
func (s *Surface) Choose(i int) *Surface {
	s.Choices = append(s.Choices, i)
	return s
}

// Reset clears recorded calls between passes.
func (s *Surface) Reset() {
	s.Calls = nil
	s.Actions = nil
	s.indent = 0
}

// Indentation is the current indent level.
func (s *Surface) Indentation() int { return s.indent }

// Kinds returns the kind of every recorded call in order.
func (s *Surface) Kinds() []string {
	out := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		out[i] = c.Kind
	}
	return out
}

func (s *Surface) LineHeight() int { return s.Line }

func (s *Surface) FieldHeight(p field.Property) int {
	if h, ok := s.Heights[p.PathString()]; ok {
		return h
	}
	return s.Line
}

func (s *Surface) Popup(area layout.Rect, label string, selected int, options []string) int {
	s.Calls = append(s.Calls, Call{Kind: "popup", Area: area, Text: label, Indent: s.indent, Options: options, Selected: selected})
	if len(s.Choices) > 0 {
		selected = s.Choices[0]
		s.Choices = s.Choices[1:]
	}
	return selected
}

func (s *Surface) Field(area layout.Rect, p field.Property) {
	s.Calls = append(s.Calls, Call{Kind: "field", Area: area, Path: p.PathString(), Indent: s.indent})
}

func (s *Surface) Label(area layout.Rect, text string) {
	s.Calls = append(s.Calls, Call{Kind: "label", Area: area, Text: text, Indent: s.indent})
}

func (s *Surface) Indent() { s.indent++ }

func (s *Surface) Outdent() {
	if s.indent > 0 {
		s.indent--
	}
}

func (s *Surface) ContextAction(area layout.Rect, label, link string, fn func()) {
	s.Actions = append(s.Actions, Action{Area: area, Label: label, Link: link, Run: fn})
}
