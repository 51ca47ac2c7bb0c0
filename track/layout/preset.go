package layout

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// RectLoop returns a closed loop running anticlockwise around the w×h rectangle of cells whose lower-left cell is origin.
// w and h must be at least 2.
func RectLoop(origin Cell, w, h int) Path {
	if w < 2 || h < 2 {
		panic(fmt.Sprintf("RectLoop: %dx%d is too small", w, h))
	}
	cells := make([]Cell, 0, 2*(w+h)-4)
	for x := 0; x < w; x++ {
		cells = append(cells, origin.Add(C(x, 0)))
	}
	for y := 1; y < h; y++ {
		cells = append(cells, origin.Add(C(w-1, y)))
	}
	for x := w - 2; x >= 0; x-- {
		cells = append(cells, origin.Add(C(x, h-1)))
	}
	for y := h - 2; y >= 1; y-- {
		cells = append(cells, origin.Add(C(0, y)))
	}
	return Path{Cells: cells, Mode: Closed}
}

// Line returns an open straight path of n cells starting at origin and stepping by dir.
func Line(origin, dir Cell, n int) Path {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = origin.Add(C(dir.X*i, dir.Y*i))
	}
	return Path{Cells: cells, Mode: Open}
}

// Testbench1 is a small oval with a station straight along the bottom.
func Testbench1() Path {
	return RectLoop(C(2, 2), 6, 4)
}

// Testbench2 is a loop with a notch, so it has corners bending both ways.
func Testbench2() Path {
	return Path{
		Cells: []Cell{
			C(2, 2), C(3, 2), C(4, 2), C(5, 2), C(6, 2), C(7, 2),
			C(7, 3), C(7, 4), C(7, 5), C(7, 6),
			C(6, 6), C(5, 6),
			C(5, 5), C(4, 5),
			C(4, 6), C(3, 6), C(2, 6),
			C(2, 5), C(2, 4), C(2, 3),
		},
		Mode: Closed,
	}
}

// Testbench3 is an open branch line, two straights joined by a single curve.
func Testbench3() Path {
	return Path{
		Cells: []Cell{
			C(1, 3), C(2, 3), C(3, 3), C(4, 3),
			C(4, 4), C(4, 5), C(4, 6), C(4, 7),
		},
		Mode: Open,
	}
}

// Presets are the hardcoded layouts selectable by name.
var Presets = map[string]func() Path{
	"testbench1": Testbench1,
	"testbench2": Testbench2,
	"testbench3": Testbench3,
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustPreset returns the named preset. It panics if there is none.
// This is for debugging/testing.
func MustPreset(name string) Path {
	f, ok := Presets[name]
	if !ok {
		panic(fmt.Sprintf("found nothing when looking up preset %s", name))
	}
	return f()
}
