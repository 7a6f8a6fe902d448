package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{"empty", "", Path{}},
		{"single", "name", Path{{Name: "name"}}},
		{"dotted", "a.b.c", Path{{Name: "a"}, {Name: "b"}, {Name: "c"}}},
		{"indexed", "items[2].name", Path{{Name: "items", Index: 2, Indexed: true}, {Name: "name"}}},
		{"nested index", "grid[1][3]", Path{{Name: "grid", Index: 1, Indexed: true}, {Index: 3, Indexed: true}}},
		{"root index", "[0].name", Path{{Index: 0, Indexed: true}, {Name: "name"}}},
		{"leading zeros", "a[007]", Path{{Name: "a", Index: 7, Indexed: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"a..b", ".a", "a.", "a[", "a[-1]", "a[x]", "a[]", "a[1]b", "a]b", "a b"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrBadPath)
		})
	}
}

func TestPath_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"a", "a.b", "items[2].name", "grid[1][3].x", "[0].name"} {
		p := MustParse(in)
		require.Equal(t, in, p.String())
	}
}

func TestPath_ChildAndAtDoNotAlias(t *testing.T) {
	base := MustParse("layers")
	a := base.At(0).Child("shape")
	b := base.At(1).Child("fill")

	require.Equal(t, "layers[0].shape", a.String())
	require.Equal(t, "layers[1].fill", b.String())
	require.Equal(t, "layers", base.String())
}

func TestPath_AtOnIndexedAppends(t *testing.T) {
	p := MustParse("grid[1]").At(2)
	require.Equal(t, "grid[1][2]", p.String())
}

func TestPath_Last(t *testing.T) {
	require.Equal(t, Segment{}, Path{}.Last())
	require.Equal(t, "name", MustParse("a.name").Last().Name)
}
