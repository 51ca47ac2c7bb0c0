// Package catalog builds the canonical meshes of the diorama once, and hands them out by MeshID.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrDimensions = errors.New("invalid dimensions")

// MeshID is a handle to a canonical mesh in a Catalog.
type MeshID int

const (
	Ground MeshID = iota
	Rail
	InnerCurve
	OuterCurve
	Sleeper
	Platform
	ShelterPost
	ShelterRoof
	TrainBody
	TrainCabin
	TrainWheel
	TrainChimney
	TreeTrunk
	TreeFoliage
	Building
	BuildingRoof
	meshIDCount
)

var meshNames = [meshIDCount]string{
	Ground:       "ground",
	Rail:         "rail",
	InnerCurve:   "inner-curve",
	OuterCurve:   "outer-curve",
	Sleeper:      "sleeper",
	Platform:     "platform",
	ShelterPost:  "shelter-post",
	ShelterRoof:  "shelter-roof",
	TrainBody:    "train-body",
	TrainCabin:   "train-cabin",
	TrainWheel:   "train-wheel",
	TrainChimney: "train-chimney",
	TreeTrunk:    "tree-trunk",
	TreeFoliage:  "tree-foliage",
	Building:     "building",
	BuildingRoof: "building-roof",
}

func (id MeshID) String() string {
	if id < 0 || id >= meshIDCount {
		return fmt.Sprintf("MeshID(%d)", int(id))
	}
	return meshNames[id]
}

// MarshalText lets MeshIDs appear by name in JSON.
func (id MeshID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Dimensions are the parametric sizes every canonical mesh is built from.
type Dimensions struct {
	// CellSize is the edge length of a grid cell.
	CellSize float32
	// GridSize is the number of cells along each edge of the ground.
	GridSize int
	// RailSection is the width and height of a rail.
	RailSection float32
	// Rail1 and Rail2 are the distances of the two rails from the left edge of a vertical straight (and from the centre of a curve).
	Rail1 float32
	Rail2 float32
	// SleeperRadius is the radius of a ballast sleeper; rails sit on top of sleepers.
	SleeperRadius float32
	SleeperStart  float32
	SleeperEnd    float32
	// StraightSleepers and CurvedSleepers are the number of sleepers per cell.
	StraightSleepers int
	CurvedSleepers   int
	// Subdivisions is the number of segments each curved rail is made of.
	Subdivisions int
	// Segments is the number of sides of round meshes.
	Segments int
}

// DefaultDimensions returns the standard dimensions for a gridSize×gridSize ground.
func DefaultDimensions(gridSize int) Dimensions {
	return Dimensions{
		CellSize:         10,
		GridSize:         gridSize,
		RailSection:      0.5,
		Rail1:            3,
		Rail2:            7,
		SleeperRadius:    0.25,
		SleeperStart:     2,
		SleeperEnd:       8,
		StraightSleepers: 5,
		CurvedSleepers:   3,
		Subdivisions:     10,
		Segments:         12,
	}
}

// RailHeight is the height of the bottom of the rails, on top of the sleepers.
func (d Dimensions) RailHeight() float32 {
	return 2 * d.SleeperRadius
}

func (d Dimensions) check() error {
	switch {
	case d.CellSize <= 0:
		return fmt.Errorf("cell size %g: %w", d.CellSize, ErrDimensions)
	case d.GridSize < 1:
		return fmt.Errorf("grid size %d: %w", d.GridSize, ErrDimensions)
	case d.RailSection <= 0 || d.Rail1-d.RailSection/2 < 0 || d.Rail2+d.RailSection/2 > d.CellSize || d.Rail1 >= d.Rail2:
		return fmt.Errorf("rails %g/%g (section %g): %w", d.Rail1, d.Rail2, d.RailSection, ErrDimensions)
	case d.SleeperRadius <= 0 || d.SleeperStart >= d.SleeperEnd:
		return fmt.Errorf("sleepers: %w", ErrDimensions)
	case d.StraightSleepers < 1 || d.CurvedSleepers < 1:
		return fmt.Errorf("sleeper count: %w", ErrDimensions)
	case d.Subdivisions < 1 || d.Segments < 3:
		return fmt.Errorf("subdivisions %d, segments %d: %w", d.Subdivisions, d.Segments, ErrDimensions)
	}
	return nil
}

// Catalog owns the canonical meshes for a render session.
type Catalog struct {
	dims   Dimensions
	meshes map[MeshID]*Mesh
}

// New builds every canonical mesh for d.
func New(d Dimensions) (*Catalog, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	c := &Catalog{
		dims:   d,
		meshes: make(map[MeshID]*Mesh, meshIDCount),
	}
	for id, build := range builders {
		m := build(d)
		m.Name = MeshID(id).String()
		c.meshes[MeshID(id)] = m
	}
	return c, nil
}

func (c *Catalog) Dimensions() Dimensions {
	return c.dims
}

// Get returns the mesh for id.
func (c *Catalog) Get(id MeshID) (*Mesh, bool) {
	m, ok := c.meshes[id]
	return m, ok
}

// MustGet is Get, but panics if id has no mesh.
func (c *Catalog) MustGet(id MeshID) *Mesh {
	m, ok := c.meshes[id]
	if !ok {
		panic(fmt.Sprintf("catalog: no mesh %s", id))
	}
	return m
}

// IDs returns the IDs of all meshes in c, in order.
func (c *Catalog) IDs() []MeshID {
	ids := make([]MeshID, 0, len(c.meshes))
	for id := range c.meshes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// alongX is an exact quarter turn about +y, laying a mesh built along +z along +x.
var alongX = mgl32.Mat4{
	0, 0, -1, 0,
	0, 1, 0, 0,
	1, 0, 0, 0,
	0, 0, 0, 1,
}
