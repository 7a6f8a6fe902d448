// Package dispatch implements the selection dispatcher for polymorphic
// slots: it draws the editor chooser, keeps the slot's occupant in line
// with the chosen label, and hands the rest of the surface to the chosen
// editor.
//
// The dispatcher holds no per-slot state. Everything it needs arrives on
// each call as the persisted label and the stored value.
package dispatch

import (
	"reflect"

	"github.com/zjrosen/polyslot/internal/browser"
	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/registry"
)

// NoneLabel is the first choice of every chooser. Picking it empties the slot.
const NoneLabel = "None"

// DocsLabel names the context action that opens an entry's documentation.
const DocsLabel = "Docs"

// Dispatcher renders slots against a built Registry.
type Dispatcher struct {
	reg    *registry.Registry
	opener browser.Opener
}

// New returns a Dispatcher. A nil opener disables documentation links.
func New(reg *registry.Registry, opener browser.Opener) *Dispatcher {
	return &Dispatcher{reg: reg, opener: opener}
}

// Registry returns the registry the dispatcher looks editors up in.
func (d *Dispatcher) Registry() *registry.Registry { return d.reg }

// Choices builds the chooser options for a partition: NoneLabel followed by
// the sorted labels. selected is the index of label, or 0 when label is
// empty or no longer registered.
func Choices(part registry.Partition, label string) (options []string, selected int) {
	labels := part.Labels()
	options = make([]string, 0, len(labels)+1)
	options = append(options, NoneLabel)
	for i, l := range labels {
		if l == label {
			selected = i + 1
		}
		options = append(options, l)
	}
	return options, selected
}

// Height is the space Render needs: one line for the chooser plus the
// selected editor's height, or one line when nothing is selected.
func (d *Dispatcher) Height(s editor.Surface, base reflect.Type, value field.Property, label string) int {
	line := s.LineHeight()
	entry, ok := d.reg.Lookup(base).Get(label)
	if !ok {
		return line
	}
	return line + entry.Editor.Height(s, value)
}

// Render draws the chooser for the slot whose occupant lives at value and
// whose persisted label is label, then the chosen editor one line below.
// It returns the label to persist.
func (d *Dispatcher) Render(s editor.Surface, area layout.Rect, base reflect.Type, value field.Property, label, title string) string {
	line := area.SingleLine(s.LineHeight())

	part := d.reg.Lookup(base)
	if part.Len() == 0 {
		s.Label(line, "No editors for type "+typeName(base))
		return label
	}

	options, selected := Choices(part, label)
	if label != "" && selected == 0 {
		log.Warn(log.CatDispatch, "persisted editor label is not registered",
			"base", typeName(base), "label", label, "path", value.PathString())
	}

	selected = s.Popup(line, title, selected, options)
	if selected <= 0 || selected >= len(options) {
		if err := value.Clear(); err != nil {
			log.ErrorErr(log.CatDispatch, "clearing slot failed", err, "path", value.PathString())
		}
		return ""
	}

	chosen := options[selected]
	entry, _ := part.Get(chosen)

	created, err := editor.Reconcile(value, entry.Type, entry.New)
	if err != nil {
		log.ErrorErr(log.CatDispatch, "reconstructing slot failed", err,
			"path", value.PathString(), "label", chosen)
	} else if created {
		log.Debug(log.CatDispatch, "slot reconstructed",
			"path", value.PathString(), "from", label, "to", chosen, "type", entry.Type.String())
	}

	if entry.DocURL != "" && d.opener != nil {
		url := entry.DocURL
		s.ContextAction(line, DocsLabel, url, func() {
			if err := d.opener.Open(url); err != nil {
				log.ErrorErr(log.CatDispatch, "opening docs failed", err, "url", url)
			}
		})
	}

	body := line.Below(line.H, entry.Editor.Height(s, value))
	entry.Editor.Render(s, body, value)
	return chosen
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
