package catalog

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Color is a flat RGB colour.
type Color struct {
	R, G, B float32
}

var (
	GroundColor   = Color{0.2, 0, 0}
	RailColor     = Color{0.2, 0.2, 0.2}
	BallastColor  = Color{0.4, 0.2, 0}
	PlatformColor = Color{0.6, 0.6, 0.55}
	ShelterColor  = Color{0.15, 0.3, 0.5}
	TrainColor    = Color{0.1, 0.35, 0.15}
	CabinColor    = Color{0.6, 0.1, 0.1}
	WheelColor    = Color{0.1, 0.1, 0.1}
	TrunkColor    = Color{0.35, 0.2, 0.05}
	FoliageColor  = Color{0.1, 0.45, 0.1}
	WallColor     = Color{0.8, 0.75, 0.6}
	RoofColor     = Color{0.5, 0.15, 0.1}
)

// Sizes of scenery meshes, all relative to a 10-unit cell.
const (
	trainWidth     = 4
	trainLength    = 6
	trainHeight    = 2
	cabinLength    = 2.5
	cabinHeight    = 2
	wheelRadius    = 0.8
	wheelWidth     = 0.4
	chimneyRadius  = 0.5
	chimneyHeight  = 1.5
	platformWidth  = 3
	platformHeight = 1
	postRadius     = 0.2
	postHeight     = 3
	roofThickness  = 0.3
	trunkRadius    = 0.4
	trunkHeight    = 2
	foliageRadius  = 2
	foliageHeight  = 5
	buildingSide   = 6
	buildingHeight = 5
	roofHeight     = 2.5
)

// scale converts a size given for a 10-unit cell to d.
func scale(d Dimensions, v float32) float32 {
	return v * d.CellSize / 10
}

var builders = [meshIDCount]func(d Dimensions) *Mesh{
	Ground: func(d Dimensions) *Mesh {
		size := d.CellSize * float32(d.GridSize)
		return Quad("", size, size)
	},
	Rail: func(d Dimensions) *Mesh {
		return Prism("", d.RailSection, d.CellSize, d.RailSection)
	},
	InnerCurve: func(d Dimensions) *Mesh {
		return ArcExtrusion("", d.Rail1, d.RailSection, d.RailSection, d.Subdivisions)
	},
	OuterCurve: func(d Dimensions) *Mesh {
		return ArcExtrusion("", d.Rail2, d.RailSection, d.RailSection, d.Subdivisions)
	},
	Sleeper: func(d Dimensions) *Mesh {
		c := Cylinder("", d.SleeperRadius, d.SleeperEnd-d.SleeperStart, d.Segments)
		return c.Transformed("", alongX)
	},
	Platform: func(d Dimensions) *Mesh {
		return Prism("", scale(d, platformWidth), d.CellSize, scale(d, platformHeight))
	},
	ShelterPost: func(d Dimensions) *Mesh {
		return Cylinder("", scale(d, postRadius), scale(d, postHeight), d.Segments)
	},
	ShelterRoof: func(d Dimensions) *Mesh {
		return Prism("", scale(d, platformWidth+0.4), d.CellSize/2, scale(d, roofThickness))
	},
	TrainBody: func(d Dimensions) *Mesh {
		return Prism("", scale(d, trainWidth), scale(d, trainLength), scale(d, trainHeight))
	},
	TrainCabin: func(d Dimensions) *Mesh {
		return Prism("", scale(d, trainWidth), scale(d, cabinLength), scale(d, cabinHeight))
	},
	TrainWheel: func(d Dimensions) *Mesh {
		c := Cylinder("", scale(d, wheelRadius), scale(d, wheelWidth), d.Segments)
		return c.Transformed("", alongX)
	},
	TrainChimney: func(d Dimensions) *Mesh {
		return Cylinder("", scale(d, chimneyRadius), scale(d, chimneyHeight), d.Segments)
	},
	TreeTrunk: func(d Dimensions) *Mesh {
		return Cylinder("", scale(d, trunkRadius), scale(d, trunkHeight), d.Segments)
	},
	TreeFoliage: func(d Dimensions) *Mesh {
		return Cone("", scale(d, foliageRadius), scale(d, foliageHeight), d.Segments)
	},
	Building: func(d Dimensions) *Mesh {
		side := scale(d, buildingSide)
		return Prism("", side, side, scale(d, buildingHeight))
	},
	BuildingRoof: func(d Dimensions) *Mesh {
		// a four-sided cone turned 45° is a pyramid over the building's square footprint
		half := scale(d, buildingSide) / 2
		c := Cone("", half*math32.Sqrt(2), scale(d, roofHeight), 4)
		return c.Transformed("", mgl32.HomogRotate3DZ(mgl32.DegToRad(45)))
	},
}

// TrainParts lists where each part of the train sits in the train's frame.
// The train faces +y and is centred on the middle of its cell.
func TrainParts(d Dimensions) []Part {
	c := d.CellSize
	w := scale(d, trainWidth)
	l := scale(d, trainLength)
	x0 := (c - w) / 2
	y0 := (c - l) / 2
	z0 := scale(d, wheelRadius) + d.RailHeight()
	parts := []Part{
		{TrainBody, TrainColor, mgl32.Vec3{x0, y0, z0}},
		{TrainCabin, CabinColor, mgl32.Vec3{x0, y0, z0 + scale(d, trainHeight)}},
		{TrainChimney, WheelColor, mgl32.Vec3{c / 2, y0 + l - scale(d, 1.2), z0 + scale(d, trainHeight)}},
	}
	for i := 0; i < 3; i++ {
		y := y0 + scale(d, 1) + float32(i)*scale(d, 2)
		parts = append(parts,
			Part{TrainWheel, WheelColor, mgl32.Vec3{x0 - scale(d, wheelWidth), y, z0 - scale(d, wheelRadius)/2}},
			Part{TrainWheel, WheelColor, mgl32.Vec3{x0 + w, y, z0 - scale(d, wheelRadius)/2}},
		)
	}
	return parts
}

// Part is a mesh drawn at an offset within a composite object.
type Part struct {
	Mesh   MeshID
	Color  Color
	Offset mgl32.Vec3
}

// StationParts lists the parts of a station, in a cell-sized frame with the platform along the left edge.
func StationParts(d Dimensions) []Part {
	c := d.CellSize
	pw := scale(d, platformWidth)
	ph := scale(d, platformHeight)
	parts := []Part{
		{Platform, PlatformColor, mgl32.Vec3{0, 0, 0}},
		{ShelterRoof, ShelterColor, mgl32.Vec3{-scale(d, 0.2), c / 4, ph + scale(d, postHeight)}},
	}
	for _, y := range []float32{c/4 + scale(d, 0.5), 3*c/4 - scale(d, 0.5)} {
		for _, x := range []float32{scale(d, 0.5), pw - scale(d, 0.5)} {
			parts = append(parts, Part{ShelterPost, ShelterColor, mgl32.Vec3{x, y, ph}})
		}
	}
	return parts
}

// TreeParts lists the parts of a tree standing in the middle of its cell.
func TreeParts(d Dimensions) []Part {
	c := d.CellSize
	return []Part{
		{TreeTrunk, TrunkColor, mgl32.Vec3{c / 2, c / 2, 0}},
		{TreeFoliage, FoliageColor, mgl32.Vec3{c / 2, c / 2, scale(d, trunkHeight)}},
	}
}

// BuildingParts lists the parts of a building standing in the middle of its cell.
func BuildingParts(d Dimensions) []Part {
	c := d.CellSize
	side := scale(d, buildingSide)
	o := (c - side) / 2
	return []Part{
		{Building, WallColor, mgl32.Vec3{o, o, 0}},
		{BuildingRoof, RoofColor, mgl32.Vec3{c / 2, c / 2, scale(d, buildingHeight)}},
	}
}
