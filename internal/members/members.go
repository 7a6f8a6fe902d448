// Package members builds per-type descriptor tables for fields and
// getter-style methods, cached for the life of the process.
//
// A Table answers two questions the rest of polyslot asks repeatedly:
// "which member does this name refer to on this type" (path resolution)
// and "which fields of this type are persisted" (auto-generated editors).
// Lookups follow Go's promotion rules: the shallowest member of a name
// wins, and two at the same depth cancel out.
package members

import (
	"reflect"
	"slices"
	"strings"

	"github.com/zjrosen/polyslot/internal/cachemanager"
	"github.com/zjrosen/polyslot/internal/log"
)

// Tag is the struct tag key polyslot reads.
//
//	Hidden  int `poly:"serialize"` // unexported but persisted and editable
//	Scratch int `poly:"-"`         // exported but never shown
const Tag = "poly"

// Kind distinguishes stored fields from getter methods.
type Kind int

const (
	KindField Kind = iota
	KindProperty
)

func (k Kind) String() string {
	if k == KindProperty {
		return "property"
	}
	return "field"
}

// Member describes one addressable member of a type.
type Member struct {
	Name string
	Kind Kind
	// Type is the field type, or the getter's first result type.
	Type reflect.Type
	// Index is the field index path for reflect.Value.FieldByIndex.
	Index []int
	// Depth is the embedding depth the member was promoted from (0 = own).
	Depth        int
	Exported     bool
	Serializable bool
	Embedded     bool
	// PointerReceiver is set for properties only callable on *T.
	PointerReceiver bool
	// ReturnsError is set for properties shaped func() (T, error).
	ReturnsError bool
}

// Table is the cached descriptor set for one type.
type Table struct {
	typ    reflect.Type
	fields []Member
	byName map[string]Member
	props  map[string]Member
}

var (
	tables    = cachemanager.New[*Table]("members", cachemanager.NoExpiration, cachemanager.DefaultCleanupInterval)
	errorType = reflect.TypeFor[error]()
)

// For returns the descriptor table for t, building it on first use.
func For(t reflect.Type) *Table {
	if t == nil {
		return &Table{byName: map[string]Member{}, props: map[string]Member{}}
	}
	tbl := tables.GetOrCreate(typeKey(t), func() *Table { return build(t) })
	if tbl.typ != t {
		// Two distinct unnamed types can share a key; never serve the wrong one.
		log.Debug(log.CatCache, "descriptor key collision", "type", t.String())
		return build(t)
	}
	return tbl
}

// Reset drops every cached table. Tests use it to measure cold builds.
func Reset() {
	tables.Flush()
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "|" + t.String()
}

// Type returns the type the table describes.
func (t *Table) Type() reflect.Type { return t.typ }

// Lookup finds a member by name. An exact field match wins unless a getter
// of the same name is declared shallower; otherwise a case-insensitive
// property match is tried.
func (t *Table) Lookup(name string) (Member, bool) {
	p, hasProp := t.props[strings.ToLower(name)]
	if m, ok := t.byName[name]; ok {
		if hasProp && p.Name == name && p.Depth < m.Depth {
			return p, true
		}
		return m, true
	}
	return p, hasProp
}

// Fields returns every visible field in declaration order, embedded
// structs flattened in place.
func (t *Table) Fields() []Member {
	return slices.Clone(t.fields)
}

// Serializable returns the persisted fields in declaration order.
func (t *Table) Serializable() []Member {
	out := make([]Member, 0, len(t.fields))
	for _, m := range t.fields {
		if m.Serializable {
			out = append(out, m)
		}
	}
	return out
}

// Properties returns the getter methods sorted by name.
func (t *Table) Properties() []Member {
	out := make([]Member, 0, len(t.props))
	for _, m := range t.props {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Member) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// SerializableNames lists the persisted field names of t. Pointer types are
// dereferenced; non-struct types have none.
func SerializableNames(t reflect.Type) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	ms := For(t).Serializable()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.Name
	}
	return names
}

func build(t reflect.Type) *Table {
	tbl := &Table{
		typ:    t,
		byName: make(map[string]Member),
		props:  make(map[string]Member),
	}
	if t.Kind() == reflect.Struct {
		tbl.fields = collectFields(t)
		for _, m := range tbl.fields {
			tbl.byName[m.Name] = m
		}
	}
	addProperties(tbl.props, t, false)
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		addProperties(tbl.props, reflect.PointerTo(t), true)
	}
	for key, p := range tbl.props {
		p.Depth = methodDepth(tbl.fields, p.Name)
		// A method stays in the method set only while no field at or above
		// its depth shadows it.
		if f, ok := tbl.byName[p.Name]; ok && p.Depth >= f.Depth {
			p.Depth = max(f.Depth-1, 0)
		}
		tbl.props[key] = p
	}
	return tbl
}

// methodDepth is the depth of the shallowest embedded struct that declares
// the method name itself, or 0 when no embedded struct has it.
func methodDepth(fields []Member, name string) int {
	depth := 0
	for _, f := range fields {
		if !f.Embedded || !hasMethod(f.Type, name) || promotes(fields, f, name) {
			continue
		}
		if d := f.Depth + 1; depth == 0 || d < depth {
			depth = d
		}
	}
	return depth
}

// promotes reports whether one of f's own embedded fields supplies the method.
func promotes(fields []Member, f Member, name string) bool {
	for _, g := range fields {
		if g.Embedded && len(g.Index) == len(f.Index)+1 &&
			slices.Equal(g.Index[:len(f.Index)], f.Index) && hasMethod(g.Type, name) {
			return true
		}
	}
	return false
}

func hasMethod(t reflect.Type, name string) bool {
	t = derefType(t)
	if t.Kind() != reflect.Interface {
		t = reflect.PointerTo(t)
	}
	_, ok := t.MethodByName(name)
	return ok
}

type queued struct {
	t     reflect.Type
	index []int
	depth int
}

// collectFields resolves t's visible fields breadth-first, so a name seen
// twice at its shallowest depth is ambiguous and dropped, as Go does. The
// survivors are returned in declaration order with embedded structs
// flattened in place.
func collectFields(t reflect.Type) []Member {
	var (
		found   []Member
		count   = map[string]int{}
		depthOf = map[string]int{}
		visited = map[reflect.Type]bool{}
		queue   = []queued{{t: t}}
	)

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if visited[q.t] {
			continue
		}
		visited[q.t] = true

		for i := 0; i < q.t.NumField(); i++ {
			f := q.t.Field(i)
			index := append(slices.Clone(q.index), i)

			if d, seen := depthOf[f.Name]; seen {
				if d == q.depth {
					count[f.Name]++
				}
				// A deeper field is shadowed by the shallower one.
				continue
			}
			depthOf[f.Name] = q.depth
			count[f.Name] = 1

			m := Member{
				Name:     f.Name,
				Kind:     KindField,
				Type:     f.Type,
				Index:    index,
				Depth:    q.depth,
				Exported: f.IsExported(),
				Embedded: f.Anonymous,
			}

			if f.Anonymous {
				if et := derefType(f.Type); et.Kind() == reflect.Struct {
					queue = append(queue, queued{t: et, index: index, depth: q.depth + 1})
					found = append(found, m)
					continue
				}
			}
			m.Serializable = serializable(f)
			found = append(found, m)
		}
	}

	winners := make(map[string]Member, len(found))
	for _, m := range found {
		if count[m.Name] > 1 {
			log.Debug(log.CatResolve, "ambiguous promoted field", "type", t.String(), "field", m.Name)
			continue
		}
		winners[m.Name] = m
	}

	out := make([]Member, 0, len(winners))
	var emit func(t reflect.Type, prefix []int, stack map[reflect.Type]bool)
	emit = func(t reflect.Type, prefix []int, stack map[reflect.Type]bool) {
		stack[t] = true
		defer delete(stack, t)
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			index := append(slices.Clone(prefix), i)
			if w, ok := winners[f.Name]; ok && slices.Equal(w.Index, index) {
				out = append(out, w)
			}
			if !f.Anonymous {
				continue
			}
			if et := derefType(f.Type); et.Kind() == reflect.Struct && !stack[et] {
				emit(et, index, stack)
			}
		}
	}
	emit(t, nil, map[reflect.Type]bool{})
	return out
}

func serializable(f reflect.StructField) bool {
	poly := f.Tag.Get(Tag)
	if poly == "-" || f.Tag.Get("yaml") == "-" {
		return false
	}
	if f.IsExported() {
		return true
	}
	for _, opt := range strings.Split(poly, ",") {
		if strings.TrimSpace(opt) == "serialize" {
			return true
		}
	}
	return false
}

func addProperties(props map[string]Member, t reflect.Type, ptr bool) {
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		mt := method.Type
		in := mt.NumIn()
		if t.Kind() != reflect.Interface {
			in-- // receiver
		}
		if in != 0 {
			continue
		}
		returnsErr := false
		switch mt.NumOut() {
		case 1:
		case 2:
			if mt.Out(1) != errorType {
				continue
			}
			returnsErr = true
		default:
			continue
		}
		key := strings.ToLower(method.Name)
		if _, exists := props[key]; exists {
			continue
		}
		props[key] = Member{
			Name:            method.Name,
			Kind:            KindProperty,
			Type:            mt.Out(0),
			Exported:        true,
			PointerReceiver: ptr,
			ReturnsError:    returnsErr,
		}
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
