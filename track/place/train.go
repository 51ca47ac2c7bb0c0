package place

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

// TrainCentre is the centre of the canonical train model, which faces +y.
var TrainCentre = mgl32.Vec3{CellSize / 2, CellSize / 2, 0}

// trackRadius is the radius of the centreline of curved track.
const trackRadius = CellSize / 2

// trainStraight orients the train towards d.
// The ±x cases differ in translation as well as direction, matching how the train model sits on its cell.
func trainStraight(d layout.Cell) Ops {
	horizontal := abs(d.X) >= abs(d.Y)
	switch {
	case horizontal && d.X > 0:
		return Ops{T(0, CellSize, 0), R(90)}
	case horizontal && d.X < 0:
		return Ops{R(-90)}
	case d.Y < 0:
		return Ops{T(CellSize, CellSize, 0), R(180)}
	default:
		return nil
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// headingAngle returns the clockwise angle from +y of a diagonal heading (one of 45, 135, 225, 315).
func headingAngle(h layout.Cell) float32 {
	switch {
	case h.X > 0 && h.Y > 0:
		return 45
	case h.X > 0 && h.Y < 0:
		return 135
	case h.X < 0 && h.Y < 0:
		return 225
	default:
		return 315
	}
}

// pivotCentre rotates the train by deg and moves its centre onto target.
func pivotCentre(deg float32, target mgl32.Vec3) Ops {
	r := R(deg).Matrix()
	moved := Point(r, TrainCentre)
	t := target.Sub(moved)
	return Ops{T(t[0], t[1], t[2]), R(deg)}
}

// arcMidpoint returns the midpoint of the curved track centreline of quadrant q, in cell-local coordinates.
func arcMidpoint(q layout.Orientation) mgl32.Vec3 {
	var pivot mgl32.Vec3
	switch q {
	case layout.WestNorth:
		pivot = mgl32.Vec3{0, CellSize, 0}
	case layout.EastSouth:
		pivot = mgl32.Vec3{CellSize, 0, 0}
	case layout.EastNorth:
		pivot = mgl32.Vec3{CellSize, CellSize, 0}
	default:
		pivot = mgl32.Vec3{}
	}
	dir := TrainCentre.Sub(pivot).Normalize()
	return pivot.Add(dir.Mul(trackRadius))
}

// Train returns the intra-cell ops placing the train at the head of p (p.Cells[0]).
//
// On a corner the train sits diagonally, so corner headings are the 45°-family angles and never a multiple of 90°.
// In Closed mode the corner test uses the last cell as the predecessor.
// If that cell is not actually adjacent, the train instead bisects the turn ahead of it, between p.Cells[1] and p.Cells[2].
// With no turn ahead, it bisects p.Cells[0]→p.Cells[1] and the square entry implied by the wrap's turn direction.
func Train(p layout.Path) Ops {
	n := len(p.Cells)
	if n < 2 {
		return nil
	}
	cur, next := p.Cells[0], p.Cells[1]
	out := next.Sub(cur)
	if n == 2 || p.Mode == layout.Open {
		return trainStraight(out)
	}
	prev := p.Cells[n-1]
	if !layout.IsCorner(prev, cur, next) {
		return trainStraight(out)
	}
	if prev.IsNeighbor(cur) {
		in := cur.Sub(prev)
		deg := headingAngle(in.Add(out))
		return pivotCentre(deg, arcMidpoint(layout.Quadrant(prev, cur, next)))
	}
	ahead := p.Cells[2].Sub(next)
	if out.IsNeighbor(layout.Cell{}) && ahead.IsNeighbor(layout.Cell{}) && out.Cross(ahead) != 0 {
		return pivotCentre(headingAngle(out.Add(ahead)), TrainCentre)
	}
	// no turn ahead either; the head is still a corner, so assume the train entered square to out
	in := impliedIncoming(out, cur.Sub(prev).Cross(out))
	return pivotCentre(headingAngle(in.Add(out)), TrainCentre)
}

// impliedIncoming returns out turned a quarter turn against a turn of the given cross sign.
func impliedIncoming(out layout.Cell, turn int) layout.Cell {
	if turn > 0 {
		return layout.Cell{X: out.Y, Y: -out.X}
	}
	return layout.Cell{X: -out.Y, Y: out.X}
}

// Heading returns the unit forward direction of the train model after ops, seen from above.
func Heading(ops Ops) mgl32.Vec2 {
	f := ops.Matrix().Mul4x1(mgl32.Vec4{0, 1, 0, 0})
	h := mgl32.Vec2{f[0], f[1]}
	if l := h.Len(); l > 0 && math32.Abs(l-1) > 1e-6 {
		h = h.Mul(1 / l)
	}
	return h
}
