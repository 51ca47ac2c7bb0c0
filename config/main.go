// Package config reads and validates diorama layout files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

// MinGridSize is the smallest allowed ground, in cells per edge.
const MinGridSize = 10

var (
	ErrGridSize    = errors.New("grid too small")
	ErrDuplicate   = errors.New("duplicate cell")
	ErrNotAdjacent = errors.New("cells not adjacent")
	ErrOutOfGrid   = errors.New("cell outside grid")
	ErrScenery     = errors.New("invalid scenery")
)

// Point is a cell written as [x, y].
type Point [2]int

func (p Point) Cell() layout.Cell {
	return layout.Cell{X: p[0], Y: p[1]}
}

func PointOf(c layout.Cell) Point {
	return Point{c.X, c.Y}
}

type SceneryKind string

const (
	Station  SceneryKind = "station"
	Tree     SceneryKind = "tree"
	Building SceneryKind = "building"
)

var sceneryKinds = []SceneryKind{Station, Tree, Building}

// Scenery is a non-track object standing on a cell.
type Scenery struct {
	Kind SceneryKind `json:"kind"`
	Cell Point       `json:"cell"`
	// Turn is the number of clockwise quarter turns, 0 to 3.
	Turn int `json:"turn"`
}

// Layout is a diorama layout file.
type Layout struct {
	SizeGrid int     `json:"size_grid"`
	Origin   Point   `json:"origin"`
	Path     []Point `json:"path"`
	// Closed selects whether the ends of the path join up. Defaults to true.
	Closed  *bool     `json:"closed,omitempty"`
	Scenery []Scenery `json:"scenery,omitempty"`
}

// IsClosed reports whether the path is a loop.
func (l *Layout) IsClosed() bool {
	return l.Closed == nil || *l.Closed
}

// TrackPath returns the path of track cells.
func (l *Layout) TrackPath() layout.Path {
	cells := make([]layout.Cell, len(l.Path))
	for i, p := range l.Path {
		cells[i] = p.Cell()
	}
	mode := layout.Closed
	if !l.IsClosed() {
		mode = layout.Open
	}
	return layout.Path{Cells: cells, Mode: mode}
}

// FromPath makes a Layout for p on a size×size grid, with the origin in the middle.
func FromPath(p layout.Path, size int) *Layout {
	l := &Layout{
		SizeGrid: size,
		Origin:   Point{size / 2, size / 2},
		Path:     make([]Point, len(p.Cells)),
	}
	for i, c := range p.Cells {
		l.Path[i] = PointOf(c)
	}
	closed := p.Mode == layout.Closed
	l.Closed = &closed
	return l
}

func (l *Layout) inGrid(c layout.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < l.SizeGrid && c.Y < l.SizeGrid
}

// Validate checks everything the geometry code assumes about a layout.
func (l *Layout) Validate() error {
	if l.SizeGrid < MinGridSize {
		return fmt.Errorf("size_grid %d (minimum %d): %w", l.SizeGrid, MinGridSize, ErrGridSize)
	}
	if !l.inGrid(l.Origin.Cell()) {
		return fmt.Errorf("origin %s: %w", l.Origin.Cell(), ErrOutOfGrid)
	}
	p := l.TrackPath()
	seen := make(map[layout.Cell]int, len(p.Cells))
	for i, c := range p.Cells {
		if !l.inGrid(c) {
			return fmt.Errorf("path %d %s: %w", i, c, ErrOutOfGrid)
		}
		if j, ok := seen[c]; ok {
			return fmt.Errorf("path %d %s (also at %d): %w", i, c, j, ErrDuplicate)
		}
		seen[c] = i
		if i > 0 && !c.IsNeighbor(p.Cells[i-1]) {
			return fmt.Errorf("path %d %s and %d %s: %w", i-1, p.Cells[i-1], i, c, ErrNotAdjacent)
		}
	}
	if n := len(p.Cells); p.Mode == layout.Closed && n >= 3 && !p.Cells[n-1].IsNeighbor(p.Cells[0]) {
		return fmt.Errorf("closed path: last %s and first %s: %w", p.Cells[n-1], p.Cells[0], ErrNotAdjacent)
	}
	for i, s := range l.Scenery {
		c := s.Cell.Cell()
		switch {
		case !slices.Contains(sceneryKinds, s.Kind):
			return fmt.Errorf("scenery %d: unknown kind %q: %w", i, s.Kind, ErrScenery)
		case s.Turn < 0 || s.Turn > 3:
			return fmt.Errorf("scenery %d: turn %d: %w", i, s.Turn, ErrScenery)
		case !l.inGrid(c):
			return fmt.Errorf("scenery %d %s: %w", i, c, ErrOutOfGrid)
		}
		if j, ok := seen[c]; ok {
			if j < len(p.Cells) && p.Cells[j] == c {
				return fmt.Errorf("scenery %d %s is on the track: %w", i, c, ErrScenery)
			}
			return fmt.Errorf("scenery %d %s: %w", i, c, ErrDuplicate)
		}
		seen[c] = len(p.Cells) + i
	}
	return nil
}

// Parse decodes and validates a layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return &l, nil
}

// Load reads, decodes and validates the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
