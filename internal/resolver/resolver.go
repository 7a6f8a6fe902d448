// Package resolver walks field paths against live object graphs.
//
// Resolution is a pure read: it follows pointers and interfaces, reads
// fields (exported or not) and calls getter-style methods, and indexes
// into slices, arrays, maps and strings. Any miss along the way (nil
// intermediate, unknown member, index past the end) makes the whole
// resolution yield nil rather than an error, so callers can render the
// slot as empty.
package resolver

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"unsafe"

	"github.com/zjrosen/polyslot/internal/log"
	"github.com/zjrosen/polyslot/internal/members"
)

var (
	ErrBadPath        = errors.New("malformed field path")
	ErrNotFound       = errors.New("member not found")
	ErrNil            = errors.New("nil value on path")
	ErrOutOfRange     = errors.New("index past end of collection")
	ErrNotEnumerable  = errors.New("value is not a collection")
	ErrNotAddressable = errors.New("value on path is not addressable")
	ErrGetter         = errors.New("property getter failed")
)

// Resolve returns the value currently at path under root, or nil.
func Resolve(root any, path Path) any {
	v, err := walk(reflect.ValueOf(root), path, false)
	if err != nil {
		log.Debug(log.CatResolve, "resolution miss", "path", path.String(), "reason", err.Error())
		return nil
	}
	return toInterface(v)
}

// ResolveString parses path and resolves it. A malformed path resolves to nil.
func ResolveString(root any, path string) any {
	p, err := Parse(path)
	if err != nil {
		log.Debug(log.CatResolve, "bad path", "path", path, "error", err.Error())
		return nil
	}
	return Resolve(root, p)
}

// Lookup is Resolve with the reason for a miss.
func Lookup(root any, path Path) (any, error) {
	v, err := walk(reflect.ValueOf(root), path, false)
	if err != nil {
		return nil, err
	}
	return toInterface(v), nil
}

// Locate returns the storage at path for writing. Every step must stay
// addressable, so root must be a pointer and the path may not pass through
// map elements, getter results, or struct values held in interfaces.
// Locate itself never mutates the graph.
func Locate(root any, path Path) (reflect.Value, error) {
	v, err := walk(reflect.ValueOf(root), path, true)
	if err != nil {
		return reflect.Value{}, err
	}
	if !v.CanSet() {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotAddressable, path)
	}
	return v, nil
}

// StaticType returns the declared type of the storage at path, which for an
// interface-typed field is the interface, not the occupant. It needs every
// intermediate to be non-nil but tolerates a nil or empty final value.
func StaticType(root any, path Path) reflect.Type {
	v, err := walk(reflect.ValueOf(root), path, false)
	if err != nil || !v.IsValid() {
		return nil
	}
	return v.Type()
}

func walk(cur reflect.Value, path Path, strict bool) (reflect.Value, error) {
	if !cur.IsValid() {
		return reflect.Value{}, ErrNil
	}
	if strict && cur.Kind() != reflect.Pointer {
		return reflect.Value{}, fmt.Errorf("%w: root must be a pointer, got %s", ErrNotAddressable, cur.Type())
	}
	for _, seg := range path {
		var err error
		if seg.Name != "" {
			if cur, err = member(cur, seg.Name, strict); err != nil {
				return reflect.Value{}, fmt.Errorf("%s: %w", seg.Name, err)
			}
		}
		if seg.Indexed {
			if cur, err = element(cur, seg.Index, strict); err != nil {
				return reflect.Value{}, fmt.Errorf("%s: %w", seg, err)
			}
		}
	}
	return cur, nil
}

func member(cur reflect.Value, name string, strict bool) (reflect.Value, error) {
	cur = indirect(cur)
	if !cur.IsValid() {
		return reflect.Value{}, ErrNil
	}

	m, ok := members.For(cur.Type()).Lookup(name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w on %s", ErrNotFound, cur.Type())
	}

	switch m.Kind {
	case members.KindField:
		if !cur.CanAddr() {
			if strict {
				return reflect.Value{}, ErrNotAddressable
			}
			cur = addressableCopy(cur)
		}
		f, err := cur.FieldByIndexErr(m.Index)
		if err != nil {
			// nil embedded pointer
			return reflect.Value{}, ErrNil
		}
		return expose(f), nil

	default:
		if strict {
			return reflect.Value{}, fmt.Errorf("%w: %s is a getter", ErrNotAddressable, m.Name)
		}
		recv := cur
		if m.PointerReceiver {
			if !recv.CanAddr() {
				recv = addressableCopy(recv)
			}
			recv = recv.Addr()
		}
		out := recv.MethodByName(m.Name).Call(nil)
		if m.ReturnsError && !out[1].IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrGetter, out[1].Interface())
		}
		return out[0], nil
	}
}

// element advances through the collection n+1 times.
func element(cur reflect.Value, n int, strict bool) (reflect.Value, error) {
	coll := indirect(cur)
	if !coll.IsValid() {
		return reflect.Value{}, ErrNil
	}

	switch coll.Kind() {
	case reflect.Slice, reflect.Array:
		if n >= coll.Len() {
			return reflect.Value{}, ErrOutOfRange
		}
		if coll.Kind() == reflect.Array && !coll.CanAddr() {
			if strict {
				return reflect.Value{}, ErrNotAddressable
			}
			coll = addressableCopy(coll)
		}
		return expose(coll.Index(n)), nil

	case reflect.Map:
		if strict {
			return reflect.Value{}, fmt.Errorf("%w: map element", ErrNotAddressable)
		}
		keys := sortedKeys(coll)
		if n >= len(keys) {
			return reflect.Value{}, ErrOutOfRange
		}
		return coll.MapIndex(keys[n]), nil

	case reflect.String:
		if strict {
			return reflect.Value{}, fmt.Errorf("%w: string element", ErrNotAddressable)
		}
		i := 0
		for _, r := range coll.String() {
			if i == n {
				return reflect.ValueOf(r), nil
			}
			i++
		}
		return reflect.Value{}, ErrOutOfRange

	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotEnumerable, coll.Type())
	}
}

// indirect follows pointers and interfaces; a nil along the way yields the
// invalid Value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// expose lifts the read-only flag reflect puts on values reached through
// unexported fields, so they can be read, called and written like any other.
func expose(v reflect.Value) reflect.Value {
	if v.IsValid() && !v.CanInterface() && v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem() //nolint:gosec // G103: field storage is owned by the host graph
	}
	return v
}

func addressableCopy(v reflect.Value) reflect.Value {
	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	return tmp
}

func toInterface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	if !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

// sortedKeys orders map keys so indexed map access is deterministic.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		switch a.Kind() {
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		default:
			return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
		}
	})
	return keys
}
