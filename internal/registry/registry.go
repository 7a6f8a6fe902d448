// Package registry discovers slot editors and indexes them by base type
// and label.
//
// A Registry is built once from a list of Markers. Building validates
// every marker; configuration errors (no constructor, a marked type that
// is neither an editor nor assignable to its base) abort the build, since
// they describe a plugin that cannot be edited. After the build the
// Registry is immutable.
package registry

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/tracing"
)

// Registry errors
var (
	ErrNoBase         = errors.New("marker has no base type")
	ErrNoConstructor  = errors.New("editor has no zero-argument constructor")
	ErrShapeMismatch  = errors.New("marked type is neither an editor nor assignable to its base type")
	ErrDuplicateLabel = errors.New("label registered twice for the same base type")
)

var (
	editorType = reflect.TypeFor[editor.Editor]()
	tracer     = otel.Tracer("github.com/zjrosen/polyslot/internal/registry")
)

// Entry is one registered editor under a base type.
type Entry struct {
	Label  string
	DocURL string
	Editor editor.Editor
	// Type is the concrete type the editor keeps in its slot.
	Type reflect.Type
	// New constructs a fresh slot occupant of Type.
	New func() any
	// Source is the marked type the entry came from.
	Source reflect.Type
}

// Registry maps base types to their labelled editors.
type Registry struct {
	partitions map[reflect.Type]*Partition
}

type buildConfig struct {
	strict bool
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// Strict makes a duplicate (base, label) pair a build error instead of
// letting the later marker overwrite the earlier one.
func Strict(on bool) BuildOption {
	return func(c *buildConfig) {
		c.strict = on
	}
}

// Build validates markers and indexes them. Markers are processed sorted
// by base type, label, then marked type name, so which duplicate wins is
// deterministic.
func Build(ctx context.Context, markers []Marker, opts ...BuildOption) (*Registry, error) {
	_, span := tracer.Start(ctx, tracing.SpanRegistryBuild)
	defer span.End()

	cfg := buildConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sorted := slices.Clone(markers)
	slices.SortStableFunc(sorted, func(a, b Marker) int {
		return cmp.Or(
			cmp.Compare(typeName(a.Base), typeName(b.Base)),
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(typeName(a.Type), typeName(b.Type)),
		)
	})

	r := &Registry{partitions: make(map[reflect.Type]*Partition)}
	for _, m := range sorted {
		entry, err := m.entry()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid editor marker")
			log.ErrorErr(log.CatRegistry, "invalid editor marker", err, "marker", m.String())
			return nil, err
		}
		if err := r.insert(m.Base, entry, cfg.strict); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "duplicate editor label")
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrRegistryMarkers, len(markers)),
		attribute.Int(tracing.AttrRegistryBases, len(r.partitions)),
		attribute.Int(tracing.AttrRegistryEntries, r.Len()),
	)
	log.Info(log.CatRegistry, "registry built", "markers", len(markers), "bases", len(r.partitions))
	return r, nil
}

func (m Marker) entry() (Entry, error) {
	if m.Base == nil || m.Type == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrNoBase, m)
	}
	if m.New == nil {
		return Entry{}, fmt.Errorf("%w: %s", ErrNoConstructor, m)
	}

	if m.Type.Implements(editorType) {
		ed, ok := m.New().(editor.Editor)
		if !ok || isNil(ed) {
			return Entry{}, fmt.Errorf("%w: constructor for %s returned nil", ErrNoConstructor, m)
		}
		ctor, ok := ed.(editor.Constructor)
		if !ok {
			return Entry{}, fmt.Errorf("%w: editor %s does not construct slot values (missing NewValue)", ErrNoConstructor, m)
		}
		sample := ctor.NewValue()
		if isNil(sample) {
			return Entry{}, fmt.Errorf("%w: editor %s NewValue returned nil", ErrNoConstructor, m)
		}
		vt := reflect.TypeOf(sample)
		if !vt.AssignableTo(m.Base) {
			return Entry{}, fmt.Errorf("%w: editor %s constructs %s", ErrShapeMismatch, m, vt)
		}
		return Entry{
			Label:  m.Label,
			DocURL: m.DocURL,
			Editor: ed,
			Type:   vt,
			New:    ctor.NewValue,
			Source: m.Type,
		}, nil
	}

	if m.Type.Kind() != reflect.Interface && m.Type.AssignableTo(m.Base) {
		// A value held in an interface slot is not addressable, so its
		// fields could never be written back.
		if m.Type.Kind() != reflect.Pointer {
			return Entry{}, fmt.Errorf("%w: %s must be a pointer type to be editable", ErrShapeMismatch, m)
		}
		if isNil(m.New()) {
			return Entry{}, fmt.Errorf("%w: constructor for %s returned nil", ErrNoConstructor, m)
		}
		return Entry{
			Label:  m.Label,
			DocURL: m.DocURL,
			Editor: editor.NewAuto(m.Type, m.New),
			Type:   m.Type,
			New:    m.New,
			Source: m.Type,
		}, nil
	}

	return Entry{}, fmt.Errorf("%w: %s", ErrShapeMismatch, m)
}

// isNil reports whether v is nil or a typed nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (r *Registry) insert(base reflect.Type, e Entry, strict bool) error {
	p, ok := r.partitions[base]
	if !ok {
		p = &Partition{base: base, entries: make(map[string]Entry)}
		r.partitions[base] = p
	}
	if prev, exists := p.entries[e.Label]; exists {
		if strict {
			return fmt.Errorf("%w: %s/%q by %s and %s", ErrDuplicateLabel, typeName(base), e.Label, typeName(prev.Source), typeName(e.Source))
		}
		log.Warn(log.CatRegistry, "duplicate editor label overwritten",
			"base", typeName(base), "label", e.Label, "previous", typeName(prev.Source), "winner", typeName(e.Source))
	} else {
		p.labels = append(p.labels, e.Label)
		slices.Sort(p.labels)
	}
	p.entries[e.Label] = e
	return nil
}

// Lookup returns the editors registered for base. An unknown base yields
// an empty Partition.
func (r *Registry) Lookup(base reflect.Type) Partition {
	if r == nil {
		return Partition{base: base}
	}
	if p, ok := r.partitions[base]; ok {
		return *p
	}
	return Partition{base: base}
}

// LookupFor is Lookup keyed by a type parameter.
func LookupFor[B any](r *Registry) Partition {
	return r.Lookup(reflect.TypeFor[B]())
}

// Bases lists every base type with at least one editor, sorted by name.
func (r *Registry) Bases() []reflect.Type {
	out := make([]reflect.Type, 0, len(r.partitions))
	for base := range r.partitions {
		out = append(out, base)
	}
	slices.SortFunc(out, func(a, b reflect.Type) int { return cmp.Compare(a.String(), b.String()) })
	return out
}

// Len is the total number of entries across all bases.
func (r *Registry) Len() int {
	n := 0
	for _, p := range r.partitions {
		n += len(p.entries)
	}
	return n
}

// Partition is the label → Entry mapping for one base type.
type Partition struct {
	base    reflect.Type
	entries map[string]Entry
	labels  []string
}

// Base is the base type this partition serves.
func (p Partition) Base() reflect.Type { return p.base }

// Len is the number of labels.
func (p Partition) Len() int { return len(p.labels) }

// Labels returns the labels sorted lexicographically.
func (p Partition) Labels() []string { return slices.Clone(p.labels) }

// Get returns the entry for label.
func (p Partition) Get(label string) (Entry, bool) {
	e, ok := p.entries[label]
	return e, ok
}

// Entries returns every entry in label order.
func (p Partition) Entries() []Entry {
	out := make([]Entry, 0, len(p.labels))
	for _, l := range p.labels {
		out = append(out, p.entries[l])
	}
	return out
}
