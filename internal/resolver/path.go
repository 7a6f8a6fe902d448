package resolver

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a member name, an element index, or a
// member name followed by an index ("items[2]"). A segment with an empty
// Name indexes the current value itself.
type Segment struct {
	Name    string
	Index   int
	Indexed bool
}

func (s Segment) String() string {
	if s.Indexed {
		return s.Name + "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Name
}

// Path locates a value inside an object graph. Paths are cheap values and
// are rebuilt from strings on every resolution.
type Path []Segment

// Parse splits "a.b[3].c" into segments. Indexes must be non-negative
// integers; "m[1][2]" yields a second, nameless indexed segment.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	var path Path
	for _, part := range strings.Split(s, ".") {
		segs, err := parsePart(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, s, err)
		}
		path = append(path, segs...)
	}
	return path, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parsePart(part string) ([]Segment, error) {
	open := strings.IndexByte(part, '[')
	name := part
	if open >= 0 {
		name = part[:open]
	}
	if strings.ContainsAny(name, "] \t") {
		return nil, fmt.Errorf("invalid member name %q", name)
	}
	if open < 0 {
		if name == "" {
			return nil, fmt.Errorf("empty segment")
		}
		return []Segment{{Name: name}}, nil
	}

	var segs []Segment
	rest := part[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected %q after index", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated index in %q", part)
		}
		digits := rest[1:end]
		if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
			return nil, fmt.Errorf("index %q is not a non-negative integer", digits)
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, err
		}
		segs = append(segs, Segment{Index: n, Indexed: true})
		rest = rest[end+1:]
	}
	segs[0].Name = name
	return segs, nil
}

func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 && seg.Name != "" {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Child returns a copy of p extended by a member name.
func (p Path) Child(name string) Path {
	out := slices.Clip(slices.Clone(p))
	return append(out, Segment{Name: name})
}

// At returns a copy of p addressing element i of the value at p.
func (p Path) At(i int) Path {
	out := slices.Clip(slices.Clone(p))
	if n := len(out); n > 0 && !out[n-1].Indexed {
		out[n-1].Index = i
		out[n-1].Indexed = true
		return out
	}
	return append(out, Segment{Index: i, Indexed: true})
}

// Last returns the final segment, or the zero Segment for the root path.
func (p Path) Last() Segment {
	if len(p) == 0 {
		return Segment{}
	}
	return p[len(p)-1]
}
