package layout

import (
	"fmt"
	"strings"
)

// Mode selects how the ends of a Path see each other.
type Mode int

const (
	// Closed treats the first and last cells as neighbours (a loop of track).
	Closed Mode = iota
	// Open treats the path as a polyline; its ends only see one neighbour.
	Open
)

func (m Mode) String() string {
	switch m {
	case Closed:
		return "closed"
	case Open:
		return "open"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Path is an ordered sequence of distinct cells.
// Consecutive cells are expected to be neighbours; this is checked by config.Layout.Validate, not here.
type Path struct {
	Cells []Cell
	Mode  Mode
}

// NewPath returns a closed Path over cells.
func NewPath(cells ...Cell) Path {
	return Path{Cells: cells}
}

func (p Path) Len() int {
	return len(p.Cells)
}

func (p Path) String() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "%s[", p.Mode)
	for i, c := range p.Cells {
		if i != 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("]")
	return b.String()
}

// Head returns the first cell of the path, which is where the train sits.
func (p Path) Head() (Cell, bool) {
	if len(p.Cells) == 0 {
		return Cell{}, false
	}
	return p.Cells[0], true
}

// Prev returns the predecessor of index i.
// In Closed mode index 0 wraps to the last cell; in Open mode it has no predecessor.
func (p Path) Prev(i int) (Cell, bool) {
	if i > 0 {
		return p.Cells[i-1], true
	}
	if p.Mode == Closed && len(p.Cells) > 1 {
		return p.Cells[len(p.Cells)-1], true
	}
	return Cell{}, false
}

// Next returns the successor of index i, wrapping like Prev.
func (p Path) Next(i int) (Cell, bool) {
	if i < len(p.Cells)-1 {
		return p.Cells[i+1], true
	}
	if p.Mode == Closed && len(p.Cells) > 1 {
		return p.Cells[0], true
	}
	return Cell{}, false
}

// Contains reports whether c is on the path.
func (p Path) Contains(c Cell) bool {
	for _, d := range p.Cells {
		if d == c {
			return true
		}
	}
	return false
}
