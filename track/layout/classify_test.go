package layout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsNeighbor(t *testing.T) {
	cells := []Cell{C(0, 0), C(1, 0), C(0, 1), C(-1, 0), C(0, -1), C(1, 1), C(2, 0), C(-3, 7), C(-3, 8)}
	for _, a := range cells {
		if a.IsNeighbor(a) {
			t.Errorf("%s is its own neighbour", a)
		}
		for _, b := range cells {
			if a.IsNeighbor(b) != b.IsNeighbor(a) {
				t.Errorf("IsNeighbor(%s, %s) is not symmetric", a, b)
			}
		}
	}
	if !C(0, 0).IsNeighbor(C(0, 1)) {
		t.Fatalf("(0,0) and (0,1) should be neighbours")
	}
	if C(0, 0).IsNeighbor(C(1, 1)) {
		t.Fatalf("diagonal cells should not be neighbours")
	}
}

func TestClassifyIsolated(t *testing.T) {
	for _, c := range []Cell{C(0, 0), C(5, 9), C(-4, 2)} {
		got, err := Classify(NewPath(c), 0)
		if err != nil {
			t.Fatalf("classify %s: %s", c, err)
		}
		if got.Kind != Isolated {
			t.Fatalf("%s: expected isolated, got %s", c, got)
		}
	}
}

func TestClassifyTerminal(t *testing.T) {
	type setup struct {
		path     Path
		i        int
		expected Segment
	}
	setups := []setup{
		{NewPath(C(0, 0), C(1, 0)), 0, Segment{Terminal, Horizontal}},
		{NewPath(C(0, 0), C(1, 0)), 1, Segment{Terminal, Horizontal}},
		{NewPath(C(0, 0), C(0, 1)), 0, Segment{Terminal, Vertical}},
		{NewPath(C(3, 4), C(3, 3)), 1, Segment{Terminal, Vertical}},
	}
	for i, s := range setups {
		t.Run(fmt.Sprintf("%d-%s-%d", i, s.path, s.i), func(t *testing.T) {
			got, err := Classify(s.path, s.i)
			if err != nil {
				t.Fatalf("classify: %s", err)
			}
			if !cmp.Equal(got, s.expected) {
				t.Fatalf("diff: %s", cmp.Diff(s.expected, got))
			}
		})
	}
}

func TestClassifyCorner(t *testing.T) {
	p := NewPath(C(1, 1), C(2, 1), C(2, 2))
	got, err := Classify(p, 1)
	if err != nil {
		t.Fatalf("classify: %s", err)
	}
	expected := Segment{Corner, WestNorth}
	if !cmp.Equal(got, expected) {
		t.Fatalf("diff: %s", cmp.Diff(expected, got))
	}
}

func TestClassifyQuadrants(t *testing.T) {
	cur := C(5, 5)
	type setup struct {
		prev, next Cell
		expected   Orientation
	}
	setups := []setup{
		{cur.Add(West), cur.Add(North), WestNorth},
		{cur.Add(North), cur.Add(West), WestNorth},
		{cur.Add(East), cur.Add(South), EastSouth},
		{cur.Add(South), cur.Add(East), EastSouth},
		{cur.Add(East), cur.Add(North), EastNorth},
		{cur.Add(North), cur.Add(East), EastNorth},
		{cur.Add(West), cur.Add(South), WestSouth},
		{cur.Add(South), cur.Add(West), WestSouth},
	}
	for _, s := range setups {
		p := NewPath(s.prev, cur, s.next)
		got, err := Classify(p, 1)
		if err != nil {
			t.Fatalf("%s: %s", p, err)
		}
		if got.Kind != Corner || got.Orientation != s.expected {
			t.Errorf("%s: expected corner/%s, got %s", p, s.expected, got)
		}
	}
}

func TestClassifyStraight(t *testing.T) {
	p := RectLoop(C(0, 0), 4, 3)
	segs, err := ClassifyAll(p)
	if err != nil {
		t.Fatalf("classify: %s", err)
	}
	expected := []Segment{
		{Corner, EastNorth}, // (0,0) wraps to (0,1)
		{Straight, Horizontal},
		{Straight, Horizontal},
		{Corner, WestNorth},
		{Straight, Vertical},
		{Corner, WestSouth},
		{Straight, Horizontal},
		{Straight, Horizontal},
		{Corner, EastSouth},
		{Straight, Vertical},
	}
	if !cmp.Equal(segs, expected) {
		t.Logf("path: %s", p)
		t.Fatalf("diff: %s", cmp.Diff(expected, segs))
	}
}

func TestClassifyOpen(t *testing.T) {
	p := Testbench3()
	segs, err := ClassifyAll(p)
	if err != nil {
		t.Fatalf("classify: %s", err)
	}
	if got := segs[0]; got != (Segment{Terminal, Horizontal}) {
		t.Fatalf("first: got %s", got)
	}
	if got := segs[len(segs)-1]; got != (Segment{Terminal, Vertical}) {
		t.Fatalf("last: got %s", got)
	}
	if got := segs[3]; got != (Segment{Corner, WestNorth}) {
		t.Fatalf("bend: got %s", got)
	}
}

func TestClassifyWrapDegenerate(t *testing.T) {
	// closed semantics on a path whose ends are not adjacent
	p := NewPath(C(1, 1), C(2, 1), C(2, 2))
	got, err := Classify(p, 0)
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v (%s)", err, got)
	}
	if got.Kind != Corner || got.Orientation != OrientNone {
		t.Fatalf("expected corner/none, got %s", got)
	}
	p.Mode = Open
	got, err = Classify(p, 0)
	if err != nil {
		t.Fatalf("open: %s", err)
	}
	if got != (Segment{Terminal, Horizontal}) {
		t.Fatalf("open: got %s", got)
	}
}

func TestClassifyIndex(t *testing.T) {
	_, err := Classify(NewPath(C(0, 0)), 1)
	if !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
	_, err = Classify(Path{}, 0)
	if !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p := MustPreset(name)
			seen := map[Cell]bool{}
			for i, c := range p.Cells {
				if seen[c] {
					t.Fatalf("duplicate %s at %d", c, i)
				}
				seen[c] = true
				if next, ok := p.Next(i); ok && !c.IsNeighbor(next) {
					t.Fatalf("%s and %s (index %d) are not adjacent", c, next, i)
				}
			}
			if _, err := ClassifyAll(p); err != nil {
				t.Fatalf("classify: %s", err)
			}
		})
	}
}
