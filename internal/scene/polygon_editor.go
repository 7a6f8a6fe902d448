package scene

import (
	"fmt"
	"reflect"

	"github.com/zjrosen/polyslot/internal/editor"
	"github.com/zjrosen/polyslot/internal/field"
	"github.com/zjrosen/polyslot/internal/layout"
	"github.com/zjrosen/polyslot/internal/log"
)

var (
	_ editor.Editor      = (*PolygonEditor)(nil)
	_ editor.Constructor = (*PolygonEditor)(nil)

	polygonType = reflect.TypeFor[*Polygon]()
)

// Presets offered above the vertex list. Index i > 0 is a regular
// polygon with i+2 sides.
var Presets = []string{"Custom", "Triangle", "Square", "Pentagon", "Hexagon"}

var vertexFields = []string{"Vertices"}

// PolygonEditor draws a summary line and a preset chooser before the
// vertex list.
type PolygonEditor struct{}

func NewPolygonEditor() *PolygonEditor { return &PolygonEditor{} }

func (*PolygonEditor) NewValue() any {
	return &Polygon{Vertices: Regular(3, 1)}
}

func (e *PolygonEditor) Height(s editor.Surface, p field.Property) int {
	return 2*s.LineHeight() + editor.RelativeFieldsHeight(s, p, vertexFields)
}

func (e *PolygonEditor) Render(s editor.Surface, area layout.Rect, p field.Property) {
	if _, err := editor.Reconcile(p, polygonType, e.NewValue); err != nil {
		log.ErrorErr(log.CatDispatch, "reconstructing polygon failed", err, "path", p.PathString())
		return
	}
	poly, ok := p.Value().(*Polygon)
	if !ok {
		return
	}

	s.Indent()
	defer s.Outdent()

	line := area.SingleLine(s.LineHeight())
	s.Label(line, fmt.Sprintf("%d vertices, area %.2f", len(poly.Vertices), poly.Area()))

	line = line.Below(line.H, line.H)
	if i := s.Popup(line, "Preset", 0, Presets); i > 0 {
		if err := p.Child("Vertices").Set(Regular(i+2, 1)); err != nil {
			log.ErrorErr(log.CatDispatch, "applying polygon preset failed", err, "path", p.PathString())
		}
	}

	editor.RelativeFields(s, p, vertexFields, line.Below(line.H, area.Bottom()-line.Bottom()))
}
