package dispatch_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/polyslot/internal/browser"
	"github.com/zjrosen/polyslot/internal/dispatch"
	"github.com/zjrosen/polyslot/internal/editor/editortest"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/registry"
)

type shape interface{ Area() float64 }

type circle struct{ Radius float64 }

func (c *circle) Area() float64 { return 3 * c.Radius * c.Radius }

type square struct {
	Side float64
	Tag  string
}

func (s *square) Area() float64 { return s.Side * s.Side }

type unedited interface{ Nothing() }

type holder struct {
	Shape shape
}

func newRegistry(t testing.TB) *registry.Registry {
	t.Helper()
	reg, err := registry.Build(context.Background(), []registry.Marker{
		registry.Mark[shape]("Circle", func() *circle { return &circle{Radius: 1} }, registry.WithDocs("https://docs.example/circle")),
		registry.Mark[shape]("Square", func() *square { return &square{Side: 2} }),
	})
	require.NoError(t, err)
	return reg
}

var shapeType = reflect.TypeFor[shape]()

func area() layout.Rect { return layout.Rect{X: 0, Y: 4, W: 60, H: 10} }

func TestChoices(t *testing.T) {
	part := registry.LookupFor[shape](newRegistry(t))

	opts, sel := dispatch.Choices(part, "")
	require.Equal(t, []string{"None", "Circle", "Square"}, opts)
	require.Equal(t, 0, sel)

	_, sel = dispatch.Choices(part, "Square")
	require.Equal(t, 2, sel)

	_, sel = dispatch.Choices(part, "Gone")
	require.Equal(t, 0, sel)
}

func TestRender_PickCircleThenNone(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{}
	p := field.Root(root).Child("Shape")

	s := editortest.New().Choose(1)
	label := d.Render(s, area(), shapeType, p, "", "Shape")
	require.Equal(t, "Circle", label)
	require.IsType(t, &circle{}, root.Shape)

	popup := s.Calls[0]
	require.Equal(t, "popup", popup.Kind)
	require.Equal(t, "Shape", popup.Text)
	require.Equal(t, []string{"None", "Circle", "Square"}, popup.Options)
	require.Equal(t, 0, popup.Selected)

	s = editortest.New().Choose(0)
	label = d.Render(s, area(), shapeType, p, label, "Shape")
	require.Equal(t, "", label)
	require.Nil(t, root.Shape)
	require.Equal(t, []string{"popup"}, s.Kinds())
}

func TestRender_SameLabelKeepsValue(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	c := &circle{Radius: 7}
	root := &holder{Shape: c}
	p := field.Root(root).Child("Shape")

	s := editortest.New()
	label := d.Render(s, area(), shapeType, p, "Circle", "Shape")
	require.Equal(t, "Circle", label)
	require.Same(t, c, root.Shape)
	require.Equal(t, 1, s.Calls[0].Selected)
}

func TestRender_SwitchLabelReconstructs(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{Shape: &circle{Radius: 7}}
	p := field.Root(root).Child("Shape")

	label := d.Render(editortest.New().Choose(2), area(), shapeType, p, "Circle", "Shape")
	require.Equal(t, "Square", label)
	require.Equal(t, &square{Side: 2}, root.Shape)
}

func TestRender_RepairsCorruptedOccupant(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{Shape: &square{Side: 3}}
	p := field.Root(root).Child("Shape")

	label := d.Render(editortest.New(), area(), shapeType, p, "Circle", "Shape")
	require.Equal(t, "Circle", label)
	require.Equal(t, &circle{Radius: 1}, root.Shape)
}

func TestRender_EditorDrawnOneLineBelowChooser(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{Shape: &square{}}
	p := field.Root(root).Child("Shape")

	s := editortest.New()
	d.Render(s, area(), shapeType, p, "Square", "Shape")

	require.Equal(t, []string{"popup", "field", "field"}, s.Kinds())
	require.Equal(t, layout.Rect{Y: 4, W: 60, H: 1}, s.Calls[0].Area)
	require.Equal(t, "Shape.Side", s.Calls[1].Path)
	require.Equal(t, 5, s.Calls[1].Area.Y)
	require.Equal(t, 1, s.Calls[1].Indent)
	require.Equal(t, "Shape.Tag", s.Calls[2].Path)
	require.Equal(t, 6, s.Calls[2].Area.Y)
}

func TestRender_NoEditors(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{}
	p := field.Root(root).Child("Shape")
	base := reflect.TypeFor[unedited]()

	s := editortest.New()
	label := d.Render(s, area(), base, p, "Kept", "Thing")
	require.Equal(t, "Kept", label)
	require.Equal(t, []string{"label"}, s.Kinds())
	require.Equal(t, "No editors for type unedited", s.Calls[0].Text)
	require.Equal(t, 1, d.Height(s, base, p, "Kept"))
}

func TestRender_UnknownLabelShowsNoneAndClears(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{Shape: &circle{}}
	p := field.Root(root).Child("Shape")

	s := editortest.New()
	label := d.Render(s, area(), shapeType, p, "Removed", "Shape")
	require.Equal(t, 0, s.Calls[0].Selected)
	require.Equal(t, "", label)
	require.Nil(t, root.Shape)
}

func TestRender_DocsContextAction(t *testing.T) {
	opener := &browser.Recorder{}
	d := dispatch.New(newRegistry(t), opener)
	root := &holder{}
	p := field.Root(root).Child("Shape")

	s := editortest.New()
	d.Render(s, area(), shapeType, p, "Circle", "Shape")

	require.Len(t, s.Actions, 1)
	act := s.Actions[0]
	require.Equal(t, dispatch.DocsLabel, act.Label)
	require.Equal(t, "https://docs.example/circle", act.Link)
	require.Equal(t, s.Calls[0].Area, act.Area)

	act.Run()
	require.Equal(t, []string{"https://docs.example/circle"}, opener.Opened())
	require.IsType(t, &circle{}, root.Shape, "opening docs does not change the slot")
}

func TestRender_NoDocsActionWithoutLink(t *testing.T) {
	d := dispatch.New(newRegistry(t), &browser.Recorder{})
	root := &holder{}
	p := field.Root(root).Child("Shape")

	s := editortest.New()
	d.Render(s, area(), shapeType, p, "Square", "Shape")
	require.Empty(t, s.Actions)
}

func TestHeight(t *testing.T) {
	d := dispatch.New(newRegistry(t), nil)
	root := &holder{Shape: &square{}}
	p := field.Root(root).Child("Shape")
	s := editortest.New()

	require.Equal(t, 1, d.Height(s, shapeType, p, ""))
	require.Equal(t, 3, d.Height(s, shapeType, p, "Square"))
	require.Equal(t, 2, d.Height(s, shapeType, p, "Circle"))
	require.Equal(t, 1, d.Height(s, shapeType, p, "Removed"))
}

func TestRender_SlotInvariantHolds(t *testing.T) {
	reg := newRegistry(t)
	d := dispatch.New(reg, nil)
	part := registry.LookupFor[shape](reg)

	rapid.Check(t, func(t *rapid.T) {
		root := &holder{}
		p := field.Root(root).Child("Shape")
		label := ""

		picks := rapid.SliceOfN(rapid.IntRange(0, 2), 1, 12).Draw(t, "picks")
		for _, pick := range picks {
			prev := label
			prevValue := root.Shape
			label = d.Render(editortest.New().Choose(pick), area(), shapeType, p, label, "Shape")

			if pick == 0 {
				if label != "" || root.Shape != nil {
					t.Fatalf("None left label %q value %v", label, root.Shape)
				}
				continue
			}
			entry, ok := part.Get(label)
			if !ok {
				t.Fatalf("returned unregistered label %q", label)
			}
			if got := reflect.TypeOf(root.Shape); got != entry.Type {
				t.Fatalf("slot holds %v under %q, want %v", got, label, entry.Type)
			}
			if prev != "" && prev != label && root.Shape == prevValue {
				t.Fatalf("switch %q -> %q kept old value", prev, label)
			}
		}
	})
}
