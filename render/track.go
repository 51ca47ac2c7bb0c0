package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/track/layout"
	"nyiyui.ca/hato/hakoniwa/track/place"
)

// PathStats counts what RenderPath drew.
type PathStats struct {
	Cells      int `json:"cells"`
	Straights  int `json:"straights"`
	Corners    int `json:"corners"`
	Isolated   int `json:"isolated"`
	Degenerate int `json:"degenerate"`
}

// RenderPath draws the track piece for every cell of p, in path order.
// Each cell is drawn in its own pushed matrix, so the stack is left as it was found.
func RenderPath(r Renderer, d catalog.Dimensions, p layout.Path) PathStats {
	var s PathStats
	for i, c := range p.Cells {
		WithTransform(r, place.Ops{place.CellTranslate(c)}, func() {
			seg, err := layout.Classify(p, i)
			if errors.Is(err, layout.ErrDegenerate) {
				s.Degenerate++
			}
			Apply(r, place.Build(seg))
			switch seg.Kind {
			case layout.Corner:
				drawCorner(r, d)
				s.Corners++
			case layout.Straight, layout.Terminal:
				drawStraight(r, d)
				s.Straights++
			default:
				drawIsolated(r, d)
				s.Isolated++
			}
		})
		s.Cells++
	}
	return s
}

// drawStraight draws a vertical straight piece in a cell-sized frame.
func drawStraight(r Renderer, d catalog.Dimensions) {
	r.SetFlatColor(catalog.RailColor)
	for _, x := range []float32{d.Rail1, d.Rail2} {
		WithTransform(r, place.Ops{place.T(x-d.RailSection/2, 0, d.RailHeight())}, func() {
			r.Draw(catalog.Rail)
		})
	}
	r.SetFlatColor(catalog.BallastColor)
	spacing := d.CellSize / float32(d.StraightSleepers)
	WithTransform(r, place.Ops{place.T(d.SleeperStart, spacing/2, d.SleeperRadius)}, func() {
		r.Draw(catalog.Sleeper)
		for i := 1; i < d.StraightSleepers; i++ {
			r.Translate(mgl32.Vec3{0, spacing, 0})
			r.Draw(catalog.Sleeper)
		}
	})
}

// drawCorner draws the canonical curve, centred on the cell's lower-left corner.
func drawCorner(r Renderer, d catalog.Dimensions) {
	r.SetFlatColor(catalog.RailColor)
	WithTransform(r, place.Ops{place.T(0, 0, d.RailHeight())}, func() {
		r.Draw(catalog.InnerCurve)
		r.Draw(catalog.OuterCurve)
	})
	r.SetFlatColor(catalog.BallastColor)
	step := float32(90) / float32(d.CurvedSleepers)
	for i := 0; i < d.CurvedSleepers; i++ {
		angle := step * (float32(i) + 0.5)
		WithTransform(r, place.Ops{place.RAxis(angle, place.Up), place.T(d.SleeperStart, 0, d.SleeperRadius)}, func() {
			r.Draw(catalog.Sleeper)
		})
	}
}

// drawIsolated draws a lone cell as an unoriented straight.
func drawIsolated(r Renderer, d catalog.Dimensions) {
	drawStraight(r, d)
}
