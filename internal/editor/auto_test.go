package editor_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/editor/editortest"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
)

type shape interface{ Area() float64 }

type circle struct {
	Radius float64
	Label  string
	cache  float64
}

func (c *circle) Area() float64 { return 3 * c.Radius * c.Radius }

type square struct{ Side float64 }

func (s *square) Area() float64 { return s.Side * s.Side }

type holder struct {
	Shape shape
}

func newCircle() any { return &circle{Radius: 1} }

func TestAuto_FieldsInDeclarationOrder(t *testing.T) {
	a := editor.NewAuto(reflect.TypeFor[*circle](), newCircle)

	require.Equal(t, []string{"Radius", "Label"}, a.Fields())
	require.Equal(t, reflect.TypeFor[*circle](), a.Type())
	require.IsType(t, &circle{}, a.NewValue())
}

func TestAuto_HeightSumsFieldHeights(t *testing.T) {
	root := &holder{Shape: &circle{}}
	p := field.Root(root).Child("Shape")
	s := editortest.New()
	s.Heights["Shape.Label"] = 3

	a := editor.NewAuto(reflect.TypeFor[*circle](), newCircle)
	require.Equal(t, 4, a.Height(s, p))
}

func TestAuto_RenderLaysOutFieldsIndented(t *testing.T) {
	root := &holder{Shape: &circle{Radius: 2}}
	p := field.Root(root).Child("Shape")
	s := editortest.New()
	s.Heights["Shape.Radius"] = 2

	a := editor.NewAuto(reflect.TypeFor[*circle](), newCircle)
	a.Render(s, layout.Rect{X: 0, Y: 5, W: 40, H: 3}, p)

	require.Len(t, s.Calls, 2)
	require.Equal(t, "Shape.Radius", s.Calls[0].Path)
	require.Equal(t, layout.Rect{Y: 5, W: 40, H: 2}, s.Calls[0].Area)
	require.Equal(t, 1, s.Calls[0].Indent)
	require.Equal(t, "Shape.Label", s.Calls[1].Path)
	require.Equal(t, 7, s.Calls[1].Area.Y)
	require.Equal(t, 0, s.Indentation(), "indent restored")
	require.Equal(t, 2.0, root.Shape.(*circle).Radius, "matching occupant kept")
}

func TestAuto_RenderReconstructsMismatchedOccupant(t *testing.T) {
	root := &holder{Shape: &square{Side: 9}}
	p := field.Root(root).Child("Shape")

	a := editor.NewAuto(reflect.TypeFor[*circle](), newCircle)
	a.Render(editortest.New(), layout.Rect{W: 40, H: 2}, p)

	require.IsType(t, &circle{}, root.Shape)
	require.Equal(t, 1.0, root.Shape.(*circle).Radius)
}

func TestReconcile(t *testing.T) {
	root := &holder{}
	p := field.Root(root).Child("Shape")
	ct := reflect.TypeFor[*circle]()

	created, err := editor.Reconcile(p, ct, newCircle)
	require.NoError(t, err)
	require.True(t, created, "empty slot is constructed")

	first := root.Shape
	created, err = editor.Reconcile(p, ct, newCircle)
	require.NoError(t, err)
	require.False(t, created)
	require.Same(t, first, root.Shape)
}

func TestReconcile_NotSettable(t *testing.T) {
	p := field.Root(holder{}).Child("Shape")
	_, err := editor.Reconcile(p, reflect.TypeFor[*circle](), newCircle)
	require.ErrorIs(t, err, field.ErrNotSettable)
}

func TestRelativeFields_ReturnsLineBelow(t *testing.T) {
	root := &holder{Shape: &circle{}}
	p := field.Root(root).Child("Shape")
	s := editortest.New()

	r := editor.RelativeFields(s, p, []string{"Radius", "Label"}, layout.Rect{Y: 1, W: 10, H: 9})
	require.Equal(t, layout.Rect{Y: 3, W: 10, H: 1}, r)
	require.Equal(t, 2, editor.RelativeFieldsHeight(s, p, []string{"Radius", "Label"}))
}
