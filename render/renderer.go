// Package render draws a diorama scene through a Renderer.
//
// Nothing here talks to a GPU: a Renderer is anything that understands a matrix stack, flat colours and canonical mesh handles.
// Recorder and Baker are the two Renderers in this package.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/track/place"
)

// Renderer is the mesh renderer the scene draws with.
// Translate and Rotate compose onto the current (top) matrix.
type Renderer interface {
	PushMatrix()
	PopMatrix()
	Translate(v mgl32.Vec3)
	// Rotate rotates by deg degrees about axis.
	Rotate(deg float32, axis mgl32.Vec3)
	SetFlatColor(c catalog.Color)
	Draw(id catalog.MeshID)
}

// Apply composes ops onto the current matrix of r.
func Apply(r Renderer, ops place.Ops) {
	for _, o := range ops {
		switch o.Kind {
		case place.Translate:
			r.Translate(o.Vec)
		case place.Rotate:
			r.Rotate(o.Angle, o.Axis)
		}
	}
}

// WithTransform pushes a matrix, applies ops, calls fn and pops, even if fn panics.
// Drawing code nests WithTransform calls instead of pushing and popping by hand.
func WithTransform(r Renderer, ops place.Ops, fn func()) {
	r.PushMatrix()
	defer r.PopMatrix()
	Apply(r, ops)
	fn()
}

// drawParts draws each part at its offset, in the current frame.
func drawParts(r Renderer, parts []catalog.Part) {
	for _, p := range parts {
		WithTransform(r, place.Ops{place.T(p.Offset[0], p.Offset[1], p.Offset[2])}, func() {
			r.SetFlatColor(p.Color)
			r.Draw(p.Mesh)
		})
	}
}
