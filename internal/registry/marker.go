package registry

import (
	"fmt"
	"reflect"
)

// Marker declares that a type is an editor for a base type under a label.
// It is the Go form of an "editor-for" annotation: plugin packages create
// markers with Mark and hand them to Declare from an init function.
type Marker struct {
	// Base is the declared type of the slots this editor serves, usually
	// an interface.
	Base reflect.Type
	// Type is the marked type: either an editor.Editor implementation
	// or a concrete type assignable to Base.
	Type   reflect.Type
	Label  string
	DocURL string
	// New is the zero-argument constructor of the marked type.
	New func() any
}

// MarkerOption customizes a Marker.
type MarkerOption func(*Marker)

// WithDocs attaches a documentation URL, offered as a context action.
func WithDocs(url string) MarkerOption {
	return func(m *Marker) {
		m.DocURL = url
	}
}

// Mark declares T as an editor for slots of type B labelled label.
//
// T is either a hand-authored editor (it implements editor.Editor and
// editor.Constructor) or a concrete type assignable to B, for which an
// auto-generated editor is synthesized. newFn is T's zero-argument
// constructor; a nil newFn fails the registry build.
func Mark[B, T any](label string, newFn func() T, opts ...MarkerOption) Marker {
	m := Marker{
		Base:  reflect.TypeFor[B](),
		Type:  reflect.TypeFor[T](),
		Label: label,
	}
	if newFn != nil {
		m.New = func() any { return newFn() }
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Marker) String() string {
	return fmt.Sprintf("%s/%q (%s)", typeName(m.Base), m.Label, typeName(m.Type))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
