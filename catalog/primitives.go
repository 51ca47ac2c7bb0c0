package catalog

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Quad returns a flat w×d rectangle on the z=0 plane with one corner at the origin.
func Quad(name string, w, d float32) *Mesh {
	b := newBuilder(name)
	b.quad(
		b.vertex(mgl32.Vec3{0, 0, 0}),
		b.vertex(mgl32.Vec3{w, 0, 0}),
		b.vertex(mgl32.Vec3{w, d, 0}),
		b.vertex(mgl32.Vec3{0, d, 0}),
	)
	return b.mesh()
}

// Prism returns a rectangular prism spanning from the origin to (w, d, h).
func Prism(name string, w, d, h float32) *Mesh {
	b := newBuilder(name)
	v := [8]uint32{}
	for i := range v {
		x := float32(i&1) * w
		y := float32(i>>1&1) * d
		z := float32(i>>2&1) * h
		v[i] = b.vertex(mgl32.Vec3{x, y, z})
	}
	b.quad(v[0], v[2], v[3], v[1]) // bottom
	b.quad(v[4], v[5], v[7], v[6]) // top
	b.quad(v[0], v[1], v[5], v[4]) // front (-y)
	b.quad(v[2], v[6], v[7], v[3]) // back (+y)
	b.quad(v[0], v[4], v[6], v[2]) // left (-x)
	b.quad(v[1], v[3], v[7], v[5]) // right (+x)
	return b.mesh()
}

// ring adds segs vertices on a circle of radius r at height z, starting on +x.
func (b *builder) ring(r, z float32, segs int) []uint32 {
	idx := make([]uint32, segs)
	for i := range idx {
		a := 2 * math32.Pi * float32(i) / float32(segs)
		idx[i] = b.vertex(mgl32.Vec3{r * math32.Cos(a), r * math32.Sin(a), z})
	}
	return idx
}

// fan closes a ring with triangles around centre.
func (b *builder) fan(centre uint32, ring []uint32, up bool) {
	for i := range ring {
		j := (i + 1) % len(ring)
		if up {
			b.triangle(centre, ring[i], ring[j])
		} else {
			b.triangle(centre, ring[j], ring[i])
		}
	}
}

// Cylinder returns a capped cylinder of the given radius along +z from 0 to length.
func Cylinder(name string, radius, length float32, segs int) *Mesh {
	b := newBuilder(name)
	bottom := b.ring(radius, 0, segs)
	top := b.ring(radius, length, segs)
	for i := range bottom {
		j := (i + 1) % segs
		b.quad(bottom[i], bottom[j], top[j], top[i])
	}
	b.fan(b.vertex(mgl32.Vec3{0, 0, 0}), bottom, false)
	b.fan(b.vertex(mgl32.Vec3{0, 0, length}), top, true)
	return b.mesh()
}

// Cone returns a cone with its base of the given radius on z=0 and its apex at height.
// With segs = 4 this is a square pyramid whose base corners lie on the axes.
func Cone(name string, radius, height float32, segs int) *Mesh {
	b := newBuilder(name)
	base := b.ring(radius, 0, segs)
	b.fan(b.vertex(mgl32.Vec3{0, 0, height}), base, true)
	b.fan(b.vertex(mgl32.Vec3{0, 0, 0}), base, false)
	return b.mesh()
}

// ArcExtrusion sweeps a width×height rectangle, centred on radius, a quarter turn about the z axis.
// The sweep starts on +x and ends on +y; both ends are capped.
// Inner and outer curved rails are both made with this.
func ArcExtrusion(name string, radius, width, height float32, subdivisions int) *Mesh {
	b := newBuilder(name)
	rIn := radius - width/2
	rOut := radius + width/2
	// per station: inner bottom, outer bottom, inner top, outer top
	stations := make([][4]uint32, subdivisions+1)
	for i := range stations {
		a := (math32.Pi / 2) * float32(i) / float32(subdivisions)
		cos, sin := math32.Cos(a), math32.Sin(a)
		if i == subdivisions {
			cos, sin = 0, 1
		}
		stations[i] = [4]uint32{
			b.vertex(mgl32.Vec3{rIn * cos, rIn * sin, 0}),
			b.vertex(mgl32.Vec3{rOut * cos, rOut * sin, 0}),
			b.vertex(mgl32.Vec3{rIn * cos, rIn * sin, height}),
			b.vertex(mgl32.Vec3{rOut * cos, rOut * sin, height}),
		}
	}
	for i := 0; i < subdivisions; i++ {
		s, t := stations[i], stations[i+1]
		b.quad(s[0], s[2], t[2], t[0]) // inner face
		b.quad(s[1], t[1], t[3], s[3]) // outer face
		b.quad(s[0], t[0], t[1], s[1]) // bottom
		b.quad(s[2], s[3], t[3], t[2]) // top
	}
	first, last := stations[0], stations[subdivisions]
	b.quad(first[0], first[1], first[3], first[2])
	b.quad(last[0], last[2], last[3], last[1])
	return b.mesh()
}
