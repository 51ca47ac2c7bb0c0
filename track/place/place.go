// Package place turns track classifications into the translate/rotate operations that put canonical meshes onto the grid.
//
// Canonical track meshes are authored for a single cell whose lower-left corner is the local origin, running along +y.
// Track and train rotations are about Down, so positive angles turn clockwise when looking at the ground from above.
package place

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

// CellSize is the world-space edge length of a grid cell.
const CellSize float32 = 10

var (
	Up   = mgl32.Vec3{0, 0, 1}
	Down = mgl32.Vec3{0, 0, -1}
)

type OpKind int

const (
	Translate OpKind = iota
	Rotate
)

// Op is one step of a placement transform.
type Op struct {
	Kind OpKind
	// Vec is the offset of a Translate.
	Vec mgl32.Vec3
	// Angle is the rotation of a Rotate, in degrees.
	Angle float32
	// Axis is the axis of a Rotate.
	Axis mgl32.Vec3
}

// T returns a translation op.
func T(x, y, z float32) Op {
	return Op{Kind: Translate, Vec: mgl32.Vec3{x, y, z}}
}

// R returns a rotation op of deg degrees about Down.
func R(deg float32) Op {
	return Op{Kind: Rotate, Angle: deg, Axis: Down}
}

// RAxis returns a rotation op of deg degrees about axis.
func RAxis(deg float32, axis mgl32.Vec3) Op {
	return Op{Kind: Rotate, Angle: deg, Axis: axis}
}

func (o Op) String() string {
	switch o.Kind {
	case Translate:
		return fmt.Sprintf("T(%g,%g,%g)", o.Vec[0], o.Vec[1], o.Vec[2])
	case Rotate:
		return fmt.Sprintf("R(%g°,%g,%g,%g)", o.Angle, o.Axis[0], o.Axis[1], o.Axis[2])
	default:
		return fmt.Sprintf("Op(%d)", int(o.Kind))
	}
}

// quarterSinCos returns exact values for multiples of 90°.
func quarterSinCos(deg float32) (s, c float32, ok bool) {
	q := deg / 90
	if q != math32.Trunc(q) {
		return 0, 0, false
	}
	switch ((int(q) % 4) + 4) % 4 {
	case 0:
		return 0, 1, true
	case 1:
		return 1, 0, true
	case 2:
		return 0, -1, true
	default:
		return -1, 0, true
	}
}

// Matrix returns the 4×4 matrix of o.
// Quarter turns about the vertical axis are exact so that neighbouring cells share rail endpoints bit for bit.
func (o Op) Matrix() mgl32.Mat4 {
	if o.Kind == Translate {
		return mgl32.Translate3D(o.Vec[0], o.Vec[1], o.Vec[2])
	}
	axis := o.Axis.Normalize()
	if axis[0] != 0 || axis[1] != 0 {
		return mgl32.HomogRotate3D(mgl32.DegToRad(o.Angle), axis)
	}
	deg := o.Angle
	if axis[2] < 0 {
		deg = -deg
	}
	s, c, ok := quarterSinCos(deg)
	if !ok {
		rad := mgl32.DegToRad(deg)
		s, c = math32.Sin(rad), math32.Cos(rad)
	}
	return mgl32.Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ops is an ordered list of ops, applied in matrix-stack order: the first op is outermost.
type Ops []Op

// Matrix composes ops the way a matrix stack would.
func (ops Ops) Matrix() mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, o := range ops {
		m = m.Mul4(o.Matrix())
	}
	return m
}

func (ops Ops) String() string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Rotations returns the angles of all Rotate ops.
func (ops Ops) Rotations() []float32 {
	var angles []float32
	for _, o := range ops {
		if o.Kind == Rotate {
			angles = append(angles, o.Angle)
		}
	}
	return angles
}

// Point transforms p by m.
func Point(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// CellOrigin is the world position of the lower-left corner of c.
func CellOrigin(c layout.Cell) mgl32.Vec3 {
	return mgl32.Vec3{CellSize * float32(c.X), CellSize * float32(c.Y), 0}
}

// CellTranslate is the op that moves the local origin to c.
func CellTranslate(c layout.Cell) Op {
	o := CellOrigin(c)
	return T(o[0], o[1], o[2])
}

// quadrantOps maps the canonical curve (joining west and south) onto each quadrant, pivoting about a cell corner.
var quadrantOps = map[layout.Orientation]Ops{
	layout.WestNorth: {T(0, CellSize, 0), R(90)},
	layout.EastSouth: {T(CellSize, 0, 0), R(270)},
	layout.EastNorth: {T(CellSize, CellSize, 0), R(180)},
	layout.WestSouth: nil,
}

// Build returns the intra-cell ops that orient the canonical mesh for seg.
// The cell translation itself is not included.
func Build(seg layout.Segment) Ops {
	switch seg.Orientation {
	case layout.Horizontal:
		return Ops{T(0, CellSize, 0), R(90)}
	case layout.Vertical, layout.OrientNone:
		return nil
	}
	return quadrant(seg.Orientation)
}

// quadrant returns a copy of the ops for o, so callers may modify the result.
func quadrant(o layout.Orientation) Ops {
	q := quadrantOps[o]
	if q == nil {
		return nil
	}
	return append(Ops(nil), q...)
}

// Turn returns ops rotating a cell-sized object by k quarter turns clockwise, keeping it inside its cell.
func Turn(k int) Ops {
	switch ((k % 4) + 4) % 4 {
	case 1:
		return quadrant(layout.WestNorth)
	case 2:
		return quadrant(layout.EastNorth)
	case 3:
		return quadrant(layout.EastSouth)
	default:
		return nil
	}
}
