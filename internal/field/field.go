// Package field is the host's field storage model: a Property is a handle
// to one location inside a document, identified by a root pointer and a
// resolver.Path. Reads go through the resolver; writes go through
// resolver.Locate so they land in the live graph.
package field

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/zjrosen/polyslot/internal/resolver"
)

var (
	ErrNotSettable     = errors.New("property is not settable")
	ErrTypeMismatch    = errors.New("value type does not match property type")
	ErrUnsupportedKind = errors.New("property kind cannot be edited as text")
)

// Property addresses a location in a document graph.
type Property struct {
	root any
	path resolver.Path
}

// Root returns the property for the whole document. root should be a
// pointer so the graph can be written through.
func Root(root any) Property {
	return Property{root: root, path: resolver.Path{}}
}

// At returns the property at a parsed path under root.
func At(root any, path resolver.Path) Property {
	return Property{root: root, path: path}
}

// Child returns the property for a member of this one.
func (p Property) Child(name string) Property {
	return Property{root: p.root, path: p.path.Child(name)}
}

// Index returns the property for element i of this one.
func (p Property) Index(i int) Property {
	return Property{root: p.root, path: p.path.At(i)}
}

// Path returns the resolver path of p.
func (p Property) Path() resolver.Path { return p.path }

// PathString is the dotted path, used as a stable identity for UI state.
func (p Property) PathString() string { return p.path.String() }

// DocumentRoot returns the root object p resolves against.
func (p Property) DocumentRoot() any { return p.root }

// Name is the final member name, or "[i]" for an element.
func (p Property) Name() string {
	last := p.path.Last()
	if last.Indexed {
		return "[" + strconv.Itoa(last.Index) + "]"
	}
	return last.Name
}

// DisplayName turns the member name into a label: "cornerRadius" becomes
// "Corner Radius", element i becomes "Element i".
func (p Property) DisplayName() string {
	last := p.path.Last()
	if last.Indexed {
		return "Element " + strconv.Itoa(last.Index)
	}
	return Nicify(last.Name)
}

// Value returns the current value, or nil if the path does not resolve.
func (p Property) Value() any {
	return resolver.Resolve(p.root, p.path)
}

// Type returns the declared type of the storage, nil if unreachable.
func (p Property) Type() reflect.Type {
	return resolver.StaticType(p.root, p.path)
}

// Exists reports whether every step up to the final storage resolves.
func (p Property) Exists() bool {
	return p.Type() != nil
}

// Set writes v into the storage. A nil v stores the zero value.
func (p Property) Set(v any) error {
	target, err := resolver.Locate(p.root, p.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotSettable, p.path, err)
	}
	if v == nil {
		target.SetZero()
		return nil
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(target.Type()):
		target.Set(rv)
	case isNumeric(rv.Kind()) && isNumeric(target.Kind()) && rv.Type().ConvertibleTo(target.Type()):
		target.Set(rv.Convert(target.Type()))
	default:
		return fmt.Errorf("%w: %s is %s, got %s", ErrTypeMismatch, p.path, target.Type(), rv.Type())
	}
	return nil
}

// Clear stores the zero value, emptying interface and pointer slots.
func (p Property) Clear() error {
	return p.Set(nil)
}

// SetString parses text according to the storage kind and writes it.
func (p Property) SetString(text string) error {
	target, err := resolver.Locate(p.root, p.path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotSettable, p.path, err)
	}
	text = strings.TrimSpace(text)

	switch target.Kind() {
	case reflect.String:
		target.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return fmt.Errorf("%s: %w", p.path, err)
		}
		target.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("%s: %w", p.path, err)
		}
		target.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("%s: %w", p.path, err)
		}
		target.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, target.Type().Bits())
		if err != nil {
			return fmt.Errorf("%s: %w", p.path, err)
		}
		target.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s is %s", ErrUnsupportedKind, p.path, target.Kind())
	}
	return nil
}

// Format renders a scalar value for display and for seeding text input.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// IsScalar reports whether t is edited as a single line of text.
func IsScalar(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool:
		return true
	default:
		return isNumeric(t.Kind())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Nicify splits a Go identifier into words and capitalizes the first.
func Nicify(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if r == '_' {
			b.WriteByte(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
