package render

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/camera"
	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/config"
	"nyiyui.ca/hato/hakoniwa/track/layout"
	"nyiyui.ca/hato/hakoniwa/track/place"
)

var ErrCellSize = errors.New("catalog cell size does not match placement cell size")

// SceneState is everything a frame is drawn from.
// It is owned by one goroutine; renderers only ever see it through RenderFrame.
type SceneState struct {
	Layout  *config.Layout
	Path    layout.Path
	Catalog *catalog.Catalog
	Camera  camera.Orbit
}

// FrameStats counts what RenderFrame drew.
type FrameStats struct {
	PathStats
	Scenery int  `json:"scenery"`
	Train   bool `json:"train"`
}

// InitializeLayout builds the catalog for l and points the camera at its origin cell.
// l is not validated here; config.Load does that, and the classifier tolerates paths it would reject.
func InitializeLayout(l *config.Layout) (*SceneState, error) {
	d := catalog.DefaultDimensions(l.SizeGrid)
	if d.CellSize != place.CellSize {
		return nil, fmt.Errorf("%g != %g: %w", d.CellSize, place.CellSize, ErrCellSize)
	}
	cat, err := catalog.New(d)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return &SceneState{
		Layout:  l,
		Path:    l.TrackPath(),
		Catalog: cat,
		Camera:  camera.New(CellCentre(l.Origin.Cell())),
	}, nil
}

// CellCentre is the world position of the middle of c, on the ground.
func CellCentre(c layout.Cell) mgl32.Vec3 {
	return place.CellOrigin(c).Add(mgl32.Vec3{place.CellSize / 2, place.CellSize / 2, 0})
}

// RenderFrame draws the ground, the track, the scenery and the train, in that order.
func (s *SceneState) RenderFrame(r Renderer) FrameStats {
	var fs FrameStats
	d := s.Catalog.Dimensions()

	WithTransform(r, nil, func() {
		r.SetFlatColor(catalog.GroundColor)
		r.Draw(catalog.Ground)
	})

	fs.PathStats = RenderPath(r, d, s.Path)

	for _, sc := range s.Layout.Scenery {
		var parts []catalog.Part
		switch sc.Kind {
		case config.Station:
			parts = catalog.StationParts(d)
		case config.Tree:
			parts = catalog.TreeParts(d)
		case config.Building:
			parts = catalog.BuildingParts(d)
		default:
			continue
		}
		ops := append(place.Ops{place.CellTranslate(sc.Cell.Cell())}, place.Turn(sc.Turn)...)
		WithTransform(r, ops, func() {
			drawParts(r, parts)
		})
		fs.Scenery++
	}

	if head, ok := s.Path.Head(); ok {
		ops := append(place.Ops{place.CellTranslate(head)}, place.Train(s.Path)...)
		WithTransform(r, ops, func() {
			drawParts(r, catalog.TrainParts(d))
		})
		fs.Train = true
	}
	return fs
}
