// Package camera is the orbiting viewpoint of the diorama.
package camera

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultTheta float32 = 45
	DefaultPhi   float32 = 30
	DefaultZoom  float32 = 300

	// Step is the angle one rotate or tilt moves, in degrees.
	Step float32 = 4

	ZoomInFactor  float32 = 0.9
	ZoomOutFactor float32 = 1.1

	FOV  float32 = 60
	Near float32 = 0.1
	Far  float32 = 500

	// phi is kept off the poles so LookAt keeps a valid up vector.
	minPhi float32 = -88
	maxPhi float32 = 88
	// MinZoom keeps the eye off the target.
	MinZoom float32 = 1
)

var up = mgl32.Vec3{0, 0, 1}

// Orbit is a camera looking at Target from Zoom away.
// Theta is measured from the x axis in the ground plane and Phi up from the ground, both in degrees.
type Orbit struct {
	Theta  float32    `json:"theta"`
	Phi    float32    `json:"phi"`
	Zoom   float32    `json:"zoom"`
	Target mgl32.Vec3 `json:"target"`
}

// New returns an Orbit with the default angles looking at target.
func New(target mgl32.Vec3) Orbit {
	return Orbit{
		Theta:  DefaultTheta,
		Phi:    DefaultPhi,
		Zoom:   DefaultZoom,
		Target: target,
	}
}

func (o Orbit) String() string {
	return fmt.Sprintf("θ=%g° φ=%g° zoom=%g target=%v", o.Theta, o.Phi, o.Zoom, o.Target)
}

// Rotate turns the camera about the target by steps, anticlockwise seen from above.
func (o *Orbit) Rotate(steps int) {
	o.Theta = normalize(o.Theta + float32(steps)*Step)
}

// Tilt raises the camera by steps.
func (o *Orbit) Tilt(steps int) {
	o.Phi = math32.Max(minPhi, math32.Min(maxPhi, o.Phi+float32(steps)*Step))
}

func (o *Orbit) ZoomIn() {
	o.Zoom = math32.Max(MinZoom, o.Zoom*ZoomInFactor)
}

func (o *Orbit) ZoomOut() {
	o.Zoom *= ZoomOutFactor
}

// Pan moves the target along the ground, relative to the way the camera faces.
// Positive forward moves away from the camera.
func (o *Orbit) Pan(right, forward float32) {
	s, c := math32.Sincos(mgl32.DegToRad(o.Theta))
	// the camera looks along (-c, -s) and its right is (-s, c)
	o.Target = o.Target.Add(mgl32.Vec3{
		-c*forward - s*right,
		-s*forward + c*right,
		0,
	})
}

func normalize(deg float32) float32 {
	deg = math32.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Eye is the world position of the camera.
func (o Orbit) Eye() mgl32.Vec3 {
	st, ct := math32.Sincos(mgl32.DegToRad(o.Theta))
	sp, cp := math32.Sincos(mgl32.DegToRad(o.Phi))
	return o.Target.Add(mgl32.Vec3{
		o.Zoom * ct * cp,
		o.Zoom * st * cp,
		o.Zoom * sp,
	})
}

// View is the view matrix looking from Eye at Target, with +z up.
func (o Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, up)
}

// Projection is the perspective projection for a viewport of the given aspect ratio.
func Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(FOV), aspect, Near, Far)
}

// Matrix is the combined projection and view matrix.
func (o Orbit) Matrix(aspect float32) mgl32.Mat4 {
	return Projection(aspect).Mul4(o.View())
}
