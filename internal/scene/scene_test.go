package scene_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/polyslot/internal/editor/editortest"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/registry"
	"github.com/zjrosen/polyslot/internal/resolver"
	"github.com/zjrosen/polyslot/internal/scene"
)

func build(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.Build(context.Background(), scene.Markers(), registry.Strict(true))
	require.NoError(t, err)
	return reg
}

func TestMarkers_Partitions(t *testing.T) {
	reg := build(t)

	require.Equal(t, []string{"Circle", "Polygon", "Rectangle", "Square"}, registry.LookupFor[scene.Shape](reg).Labels())
	require.Equal(t, []string{"Gradient", "Solid"}, registry.LookupFor[scene.Fill](reg).Labels())

	poly, ok := registry.LookupFor[scene.Shape](reg).Get("Polygon")
	require.True(t, ok)
	require.IsType(t, &scene.PolygonEditor{}, poly.Editor)
	require.IsType(t, &scene.Polygon{}, poly.New())
	require.Contains(t, poly.DocURL, "#Polygon")
}

func TestMarkers_EveryEntryFitsItsBase(t *testing.T) {
	reg := build(t)
	for _, base := range reg.Bases() {
		for _, e := range reg.Lookup(base).Entries() {
			v := e.New()
			require.NotNil(t, v, e.Label)
			require.True(t, e.Type.AssignableTo(base), e.Label)
		}
	}
}

func TestMarkers_DeclaredAtInit(t *testing.T) {
	labels := map[string]bool{}
	for _, m := range registry.Declared() {
		labels[m.Label] = true
	}
	require.True(t, labels["Circle"])
	require.True(t, labels["Gradient"])
}

func TestAreas(t *testing.T) {
	require.InDelta(t, 12.566, (&scene.Circle{Radius: 2}).Area(), 0.001)
	require.Equal(t, 9.0, (&scene.Square{Side: 3}).Area())
	require.Equal(t, 6.0, (&scene.Rectangle{Width: 2, Height: 3}).Area())

	unit := &scene.Polygon{Vertices: []scene.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}}
	require.Equal(t, 1.0, unit.Area())
	require.Equal(t, 0.0, (&scene.Polygon{Vertices: []scene.Point{{0, 0}, {1, 1}}}).Area())
}

func TestRegular(t *testing.T) {
	require.Nil(t, scene.Regular(2, 1))

	sq := scene.Regular(4, 1)
	require.Len(t, sq, 4)
	require.Equal(t, scene.Point{X: 0, Y: 1}, sq[0])
	require.InDelta(t, 2.0, (&scene.Polygon{Vertices: sq}).Area(), 1e-6)
}

func TestGradientCSS(t *testing.T) {
	g := &scene.Gradient{From: "#000", To: "#fff", Angle: 45}
	require.Equal(t, "linear-gradient(45deg, #000, #fff)", g.CSS())
	require.Equal(t, "#abc", (&scene.Solid{Color: "#abc"}).CSS())
}

func TestScene_CoveredArea(t *testing.T) {
	s := scene.Example()
	require.InDelta(t, 4*3.14159+20, s.CoveredArea(), 0.001, "roof is hidden")

	s.Layers[0].Shape.Value = nil
	require.Equal(t, 20.0, s.CoveredArea())
}

func TestScene_ResolvesThroughSlots(t *testing.T) {
	s := scene.Example()

	require.Equal(t, 2.0, resolver.ResolveString(s, "Layers[0].Shape.Value.Radius"))
	require.Equal(t, "Gradient", resolver.ResolveString(s, "Layers[0].Fill.Editor"))
	require.Nil(t, resolver.ResolveString(s, "layers[0].name"), "fields match exactly")
	require.InDelta(t, s.CoveredArea(), resolver.ResolveString(s, "coveredarea"), 1e-9, "properties match case-insensitively")
	require.Nil(t, resolver.ResolveString(s, "Layers[3].Name"))
}

type holder struct {
	Shape scene.Shape
}

func TestPolygonEditor_RenderConstructsAndSummarizes(t *testing.T) {
	h := &holder{}
	p := field.Root(h).Child("Shape")
	s := editortest.New()
	ed := scene.NewPolygonEditor()

	ed.Render(s, layout.Rect{Y: 2, W: 40, H: 10}, p)

	require.IsType(t, &scene.Polygon{}, h.Shape)
	require.Equal(t, []string{"label", "popup", "field"}, s.Kinds())
	require.Equal(t, "3 vertices, area 1.30", s.Calls[0].Text)
	require.Equal(t, 2, s.Calls[0].Area.Y)
	require.Equal(t, 3, s.Calls[1].Area.Y)
	require.Equal(t, scene.Presets, s.Calls[1].Options)
	require.Equal(t, "Shape.Vertices", s.Calls[2].Path)
	require.Equal(t, 4, s.Calls[2].Area.Y)
	require.Equal(t, 1, s.Calls[0].Indent)
	require.Equal(t, 0, s.Indentation())
}

func TestPolygonEditor_PresetRewritesVertices(t *testing.T) {
	h := &holder{Shape: &scene.Polygon{Vertices: scene.Regular(3, 1)}}
	p := field.Root(h).Child("Shape")
	s := editortest.New().Choose(4)

	scene.NewPolygonEditor().Render(s, layout.Rect{W: 40, H: 10}, p)
	require.Len(t, h.Shape.(*scene.Polygon).Vertices, 6)

	s.Reset()
	scene.NewPolygonEditor().Render(s, layout.Rect{W: 40, H: 10}, p)
	require.Equal(t, "6 vertices, area 2.60", s.Calls[0].Text)
}

func TestPolygonEditor_Height(t *testing.T) {
	h := &holder{Shape: &scene.Polygon{}}
	p := field.Root(h).Child("Shape")
	s := editortest.New()
	s.Heights["Shape.Vertices"] = 4

	require.Equal(t, 6, scene.NewPolygonEditor().Height(s, p))
}
