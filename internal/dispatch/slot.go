package dispatch

import (
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/registry"
)

// ErrSlotValue is returned when a registry entry builds a value that does
// not fit the slot's base type.
var ErrSlotValue = errors.New("constructed value does not fit slot")

// Polymorphic is implemented by *Slot[B] for every B. Hosts use it to find
// slots in a document without knowing B.
type Polymorphic interface {
	// BaseType is the declared type of the slot's value.
	BaseType() reflect.Type
	// Hydrate builds the slot's value from what the decoder kept aside.
	Hydrate(reg *registry.Registry) error
}

var polymorphicType = reflect.TypeFor[Polymorphic]()

// Slot is the persisted form of a polymorphic field: the chosen editor
// label next to the value it constructed.
type Slot[B any] struct {
	Editor string `yaml:"editor,omitempty"`
	Value  B      `yaml:"value,omitempty"`

	raw *yaml.Node
}

// Of returns a slot holding v under label.
func Of[B any](label string, v B) Slot[B] {
	return Slot[B]{Editor: label, Value: v}
}

// BaseType is B.
func (Slot[B]) BaseType() reflect.Type { return reflect.TypeFor[B]() }

// Empty reports whether the slot has no occupant.
func (s Slot[B]) Empty() bool {
	v := reflect.ValueOf(&s.Value).Elem()
	return v.IsZero()
}

// UnmarshalYAML records the label and keeps the value node for Hydrate,
// since the concrete type is only known once the registry is consulted.
func (s *Slot[B]) UnmarshalYAML(node *yaml.Node) error {
	var wire struct {
		Editor string    `yaml:"editor"`
		Value  yaml.Node `yaml:"value"`
	}
	if err := node.Decode(&wire); err != nil {
		return err
	}

	var zero B
	s.Editor = wire.Editor
	s.Value = zero
	s.raw = nil
	if wire.Value.Kind != 0 {
		n := wire.Value
		s.raw = &n
	}
	return nil
}

// Hydrate constructs the value for the slot's label with the registry
// entry's constructor and decodes the kept node into it. Without a kept
// node, a value already of the label's type is left alone. An unknown
// label leaves the slot empty.
func (s *Slot[B]) Hydrate(reg *registry.Registry) error {
	raw := s.raw
	s.raw = nil
	if s.Editor == "" {
		return nil
	}

	entry, ok := registry.LookupFor[B](reg).Get(s.Editor)
	if !ok {
		log.Warn(log.CatDocument, "slot label has no registered editor",
			"base", typeName(s.BaseType()), "label", s.Editor)
		return nil
	}

	if raw == nil && s.hasValueOf(entry.Type) {
		return nil
	}

	v := entry.New()
	if raw != nil {
		holder := reflect.New(reflect.TypeOf(v))
		holder.Elem().Set(reflect.ValueOf(v))
		if err := raw.Decode(holder.Interface()); err != nil {
			return fmt.Errorf("decoding %q value: %w", s.Editor, err)
		}
		v = holder.Elem().Interface()
	}

	b, ok := v.(B)
	if !ok {
		return fmt.Errorf("%w: %q built %T", ErrSlotValue, s.Editor, v)
	}
	s.Value = b
	return nil
}

func (s *Slot[B]) hasValueOf(t reflect.Type) bool {
	v := any(s.Value)
	return v != nil && reflect.TypeOf(v) == t
}

// IsSlot reports whether t is a Slot type.
func IsSlot(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(polymorphicType)
}

// SlotBase returns the base type of the Slot type t.
func SlotBase(t reflect.Type) reflect.Type {
	if !IsSlot(t) {
		return nil
	}
	return reflect.New(t).Interface().(Polymorphic).BaseType()
}
