package layout

import (
	"errors"
	"fmt"
)

var (
	ErrIndex      = errors.New("index out of range")
	ErrDegenerate = errors.New("corner matches no quadrant")
)

// Kind is the local shape of track at a path cell.
type Kind int

const (
	// Isolated is the only cell of a single-cell path.
	Isolated Kind = iota
	// Terminal is a straight segment at the end of track (a two-cell path, or an end of an Open path).
	Terminal
	// Straight is an interior straight segment.
	Straight
	// Corner is an interior curved segment.
	Corner
)

func (k Kind) String() string {
	switch k {
	case Isolated:
		return "isolated"
	case Terminal:
		return "terminal"
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsStraight reports whether k is drawn with straight rail.
func (k Kind) IsStraight() bool {
	return k == Terminal || k == Straight
}

// Orientation is the run axis of a straight segment, or the quadrant of a corner.
// Corner quadrants are named after the two compass directions the corner connects.
type Orientation int

const (
	OrientNone Orientation = iota
	Horizontal
	Vertical
	WestNorth
	EastSouth
	EastNorth
	WestSouth
)

func (o Orientation) String() string {
	switch o {
	case OrientNone:
		return "none"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case WestNorth:
		return "west-north"
	case EastSouth:
		return "east-south"
	case EastNorth:
		return "east-north"
	case WestSouth:
		return "west-south"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// IsQuadrant reports whether o is one of the four corner quadrants.
func (o Orientation) IsQuadrant() bool {
	return o >= WestNorth && o <= WestSouth
}

// Segment is the classification of a single path cell.
type Segment struct {
	Kind        Kind
	Orientation Orientation
}

func (s Segment) String() string {
	return fmt.Sprintf("%s/%s", s.Kind, s.Orientation)
}

// axis returns Horizontal if other sits left or right of cur, and Vertical otherwise.
func axis(cur, other Cell) Orientation {
	if other.X != cur.X {
		return Horizontal
	}
	return Vertical
}

// Quadrant finds which corner shape prev and next form around cur.
// It returns OrientNone if they are not on two perpendicular sides of cur.
func Quadrant(prev, cur, next Cell) Orientation {
	has := func(off Cell) bool {
		o := cur.Add(off)
		return prev == o || next == o
	}
	switch {
	case has(West) && has(North):
		return WestNorth
	case has(East) && has(South):
		return EastSouth
	case has(East) && has(North):
		return EastNorth
	case has(West) && has(South):
		return WestSouth
	}
	return OrientNone
}

// IsCorner reports whether the track bends at cur when coming from prev and leaving to next.
func IsCorner(prev, cur, next Cell) bool {
	return cur.Sub(prev).Cross(next.Sub(cur)) != 0
}

// Classify determines the shape of track at index i of p.
// A corner that matches no quadrant yields Segment{Corner, OrientNone} together with ErrDegenerate; callers may still draw it.
func Classify(p Path, i int) (Segment, error) {
	if i < 0 || i >= len(p.Cells) {
		return Segment{}, fmt.Errorf("classify %d of %d: %w", i, len(p.Cells), ErrIndex)
	}
	cur := p.Cells[i]
	switch len(p.Cells) {
	case 1:
		return Segment{Kind: Isolated}, nil
	case 2:
		return Segment{Kind: Terminal, Orientation: axis(cur, p.Cells[1-i])}, nil
	}
	prev, okPrev := p.Prev(i)
	next, okNext := p.Next(i)
	if !okPrev {
		return Segment{Kind: Terminal, Orientation: axis(cur, next)}, nil
	}
	if !okNext {
		return Segment{Kind: Terminal, Orientation: axis(cur, prev)}, nil
	}
	if !IsCorner(prev, cur, next) {
		return Segment{Kind: Straight, Orientation: axis(cur, next)}, nil
	}
	q := Quadrant(prev, cur, next)
	if q == OrientNone {
		return Segment{Kind: Corner}, fmt.Errorf("classify %d %s (prev %s, next %s): %w", i, cur, prev, next, ErrDegenerate)
	}
	return Segment{Kind: Corner, Orientation: q}, nil
}

// ClassifyAll classifies every cell of p.
// Degenerate corners are kept in the result; the first such error is returned.
func ClassifyAll(p Path) ([]Segment, error) {
	segs := make([]Segment, len(p.Cells))
	var firstErr error
	for i := range p.Cells {
		seg, err := Classify(p, i)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		segs[i] = seg
	}
	return segs, firstErr
}
