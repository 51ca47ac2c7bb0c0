package layout

import "fmt"

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Cell identifies a single grid square.
// Cells are comparable, so they can be used directly as map keys.
type Cell struct {
	X int
	Y int
}

// C is shorthand for Cell{x, y}.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func (c Cell) Add(o Cell) Cell {
	return Cell{c.X + o.X, c.Y + o.Y}
}

func (c Cell) Sub(o Cell) Cell {
	return Cell{c.X - o.X, c.Y - o.Y}
}

// Cross returns the z component of the cross product of c and o treated as vectors.
func (c Cell) Cross(o Cell) int {
	return c.X*o.Y - c.Y*o.X
}

func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// IsNeighbor reports whether o shares an edge with c.
func (c Cell) IsNeighbor(o Cell) bool {
	return c.Manhattan(o) == 1
}

// Compass offsets from a cell.
var (
	West  = Cell{-1, 0}
	East  = Cell{1, 0}
	South = Cell{0, -1}
	North = Cell{0, 1}
)
