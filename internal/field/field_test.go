package field

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polyslot/internal/resolver"
)

type shape interface{ Kind() string }

type circle struct{ Radius float64 }

func (*circle) Kind() string { return "circle" }

type layer struct {
	Name    string
	Visible bool
	Count   int8
	Weight  uint16
	Opacity float32
	Shape   shape
	notes   string
}

type scene struct {
	Layers []layer
}

func newScene() *scene {
	return &scene{Layers: []layer{{Name: "bg"}, {Name: "fg", Shape: &circle{Radius: 1}}}}
}

func TestProperty_Navigation(t *testing.T) {
	root := newScene()
	p := Root(root).Child("Layers").Index(1).Child("Shape")

	require.Equal(t, "Layers[1].Shape", p.PathString())
	require.Equal(t, "Shape", p.Name())
	require.Equal(t, "Element 1", Root(root).Child("Layers").Index(1).DisplayName())
	require.Equal(t, "[1]", Root(root).Child("Layers").Index(1).Name())
	require.Same(t, root, p.DocumentRoot())
	require.Equal(t, resolver.MustParse("Layers[1].Shape"), p.Path())
	require.Equal(t, resolver.MustParse("Layers[1].Shape"), At(root, resolver.MustParse("Layers[1].Shape")).Path())
}

func TestProperty_ValueAndType(t *testing.T) {
	root := newScene()

	shapeProp := Root(root).Child("Layers").Index(1).Child("Shape")
	require.IsType(t, &circle{}, shapeProp.Value())
	require.Equal(t, reflect.TypeFor[shape](), shapeProp.Type())

	empty := Root(root).Child("Layers").Index(0).Child("Shape")
	require.Nil(t, empty.Value())
	require.True(t, empty.Exists())

	missing := Root(root).Child("Layers").Index(5).Child("Shape")
	require.False(t, missing.Exists())
}

func TestProperty_SetAndClear(t *testing.T) {
	root := newScene()
	p := Root(root).Child("Layers").Index(0).Child("Shape")

	require.NoError(t, p.Set(&circle{Radius: 4}))
	require.Equal(t, 4.0, root.Layers[0].Shape.(*circle).Radius)

	require.NoError(t, p.Clear())
	require.Nil(t, root.Layers[0].Shape)
}

func TestProperty_SetConvertsNumbers(t *testing.T) {
	root := newScene()
	p := Root(root).Child("Layers").Index(0).Child("Opacity")

	require.NoError(t, p.Set(0.5))
	require.Equal(t, float32(0.5), root.Layers[0].Opacity)
}

func TestProperty_SetTypeMismatch(t *testing.T) {
	root := newScene()
	err := Root(root).Child("Layers").Index(0).Child("Name").Set(12)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestProperty_SetNotSettable(t *testing.T) {
	err := Root(*newScene()).Child("Layers").Set(nil)
	require.ErrorIs(t, err, ErrNotSettable)

	err = Root(newScene()).Child("Layers").Index(9).Child("Name").Set("x")
	require.ErrorIs(t, err, ErrNotSettable)
}

func TestProperty_SetString(t *testing.T) {
	root := newScene()
	l := Root(root).Child("Layers").Index(0)

	require.NoError(t, l.Child("Name").SetString("  back "))
	require.NoError(t, l.Child("Visible").SetString("true"))
	require.NoError(t, l.Child("Count").SetString("-7"))
	require.NoError(t, l.Child("Weight").SetString("300"))
	require.NoError(t, l.Child("Opacity").SetString("0.25"))
	require.NoError(t, l.Child("notes").SetString("private"))

	got := root.Layers[0]
	require.Equal(t, "back", got.Name)
	require.True(t, got.Visible)
	require.Equal(t, int8(-7), got.Count)
	require.Equal(t, uint16(300), got.Weight)
	require.Equal(t, float32(0.25), got.Opacity)
	require.Equal(t, "private", got.notes)
}

func TestProperty_SetStringErrors(t *testing.T) {
	l := Root(newScene()).Child("Layers").Index(0)

	require.Error(t, l.Child("Count").SetString("999"), "overflows int8")
	require.Error(t, l.Child("Visible").SetString("maybe"))
	require.ErrorIs(t, l.Child("Shape").SetString("circle"), ErrUnsupportedKind)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "", Format(nil))
	require.Equal(t, "abc", Format("abc"))
	require.Equal(t, "0.1", Format(float32(0.1)))
	require.Equal(t, "2.5", Format(2.5))
	require.Equal(t, "true", Format(true))
	require.Equal(t, "42", Format(42))
}

func TestIsScalar(t *testing.T) {
	require.True(t, IsScalar(reflect.TypeFor[string]()))
	require.True(t, IsScalar(reflect.TypeFor[uint8]()))
	require.False(t, IsScalar(reflect.TypeFor[shape]()))
	require.False(t, IsScalar(reflect.TypeFor[[]int]()))
	require.False(t, IsScalar(nil))
}

func TestNicify(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"name":         "Name",
		"cornerRadius": "Corner Radius",
		"HTTPServer":   "HTTP Server",
		"snake_case":   "Snake case",
		"Vertex2D":     "Vertex2 D",
		"ID":           "ID",
	}
	for in, want := range tests {
		require.Equal(t, want, Nicify(in), in)
	}
}
