package scene

import (
	"github.com/zjrosen/polyslot/internal/dispatch"
)

// Scene is the document edited by polyslot.
type Scene struct {
	Name       string              `yaml:"name"`
	Background dispatch.Slot[Fill] `yaml:"background"`
	Layers     []Layer             `yaml:"layers"`
}

// Layer is one shape painted with one fill.
type Layer struct {
	Name    string               `yaml:"name"`
	Visible bool                 `yaml:"visible"`
	Shape   dispatch.Slot[Shape] `yaml:"shape"`
	Fill    dispatch.Slot[Fill]  `yaml:"fill"`
}

// CoveredArea sums the area of visible layers with a shape.
func (s *Scene) CoveredArea() float64 {
	total := 0.0
	for _, l := range s.Layers {
		if l.Visible && l.Shape.Value != nil {
			total += l.Shape.Value.Area()
		}
	}
	return total
}

// Example is the document written by `polyslot init`.
func Example() *Scene {
	return &Scene{
		Name:       "sunset",
		Background: dispatch.Of[Fill]("Solid", &Solid{Color: "#1e1e2e"}),
		Layers: []Layer{
			{
				Name:    "sun",
				Visible: true,
				Shape:   dispatch.Of[Shape]("Circle", &Circle{Radius: 2}),
				Fill:    dispatch.Of[Fill]("Gradient", &Gradient{From: "#f9e2af", To: "#fab387", Angle: 90}),
			},
			{
				Name:    "ground",
				Visible: true,
				Shape:   dispatch.Of[Shape]("Rectangle", &Rectangle{Width: 10, Height: 2}),
				Fill:    dispatch.Of[Fill]("Solid", &Solid{Color: "#a6e3a1"}),
			},
			{
				Name:  "roof",
				Shape: dispatch.Of[Shape]("Polygon", &Polygon{Vertices: Regular(3, 1)}),
			},
		},
	}
}
