// Package scene is the content the editor ships with: shapes and fills
// that fill the polymorphic slots of a Scene document.
package scene

import (
	"fmt"
	"math"

	"github.com/zjrosen/polyslot/internal/registry"
)

const docsBase = "https://pkg.go.dev/github.com/zjrosen/polyslot/internal/scene#"

// Shape is the base type of a layer's geometry slot.
type Shape interface {
	Area() float64
}

// Fill is the base type of paint slots.
type Fill interface {
	CSS() string
}

type Circle struct {
	Radius float64 `yaml:"radius"`
}

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type Square struct {
	Side float64 `yaml:"side"`
}

func (s *Square) Area() float64 { return s.Side * s.Side }

type Rectangle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r *Rectangle) Area() float64 { return r.Width * r.Height }

// Point is a polygon vertex.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Polygon is a closed path through its vertices.
type Polygon struct {
	Vertices []Point `yaml:"vertices"`
}

// Area is the shoelace area; winding direction does not matter.
func (p *Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i, a := range p.Vertices {
		b := p.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// Regular returns the vertices of a regular n-gon with circumradius r,
// the first vertex pointing up.
func Regular(n int, r float64) []Point {
	if n < 3 {
		return nil
	}
	pts := make([]Point, n)
	for k := range pts {
		a := math.Pi/2 + 2*math.Pi*float64(k)/float64(n)
		pts[k] = Point{X: round(r * math.Cos(a)), Y: round(r * math.Sin(a))}
	}
	return pts
}

func round(f float64) float64 { return math.Round(f*1e6) / 1e6 }

type Solid struct {
	Color string `yaml:"color"`
}

func (s *Solid) CSS() string { return s.Color }

type Gradient struct {
	From  string  `yaml:"from"`
	To    string  `yaml:"to"`
	Angle float64 `yaml:"angle"`
}

func (g *Gradient) CSS() string {
	return fmt.Sprintf("linear-gradient(%gdeg, %s, %s)", g.Angle, g.From, g.To)
}

// Markers declares every editor in this package.
func Markers() []registry.Marker {
	return []registry.Marker{
		registry.Mark[Shape]("Circle", func() *Circle { return &Circle{Radius: 1} },
			registry.WithDocs(docsBase+"Circle")),
		registry.Mark[Shape]("Square", func() *Square { return &Square{Side: 1} }),
		registry.Mark[Shape]("Rectangle", func() *Rectangle { return &Rectangle{Width: 2, Height: 1} }),
		registry.Mark[Shape]("Polygon", NewPolygonEditor,
			registry.WithDocs(docsBase+"Polygon")),
		registry.Mark[Fill]("Solid", func() *Solid { return &Solid{Color: "#ffffff"} }),
		registry.Mark[Fill]("Gradient", func() *Gradient { return &Gradient{From: "#000000", To: "#ffffff"} },
			registry.WithDocs(docsBase+"Gradient")),
	}
}

func init() {
	registry.Declare(Markers()...)
}
