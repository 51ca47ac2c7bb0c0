package catalog

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBox returns a box that any point expands.
func EmptyBox() Box {
	inf := math32.Inf(1)
	return Box{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Expand grows b to contain p.
func (b *Box) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
}

// Union grows b to contain o.
func (b *Box) Union(o Box) {
	if o.IsEmpty() {
		return
	}
	b.Expand(o.Min)
	b.Expand(o.Max)
}

func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (b Box) String() string {
	return fmt.Sprintf("[%v – %v]", b.Min, b.Max)
}

// Mesh is an indexed triangle mesh.
// Vertices are in the mesh's own local frame; Indices has three entries per triangle.
// A Mesh is never modified once it is in a Catalog.
type Mesh struct {
	Name     string
	Vertices []mgl32.Vec3
	Indices  []uint32
	Bounds   Box
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// builder accumulates vertices and triangles.
type builder struct {
	name     string
	vertices []mgl32.Vec3
	indices  []uint32
}

func newBuilder(name string) *builder {
	return &builder{name: name}
}

// vertex adds v and returns its index.
func (b *builder) vertex(v mgl32.Vec3) uint32 {
	b.vertices = append(b.vertices, v)
	return uint32(len(b.vertices) - 1)
}

func (b *builder) triangle(i, j, k uint32) {
	b.indices = append(b.indices, i, j, k)
}

// quad adds two triangles for the quad i, j, k, l (in winding order).
func (b *builder) quad(i, j, k, l uint32) {
	b.triangle(i, j, k)
	b.triangle(i, k, l)
}

func (b *builder) mesh() *Mesh {
	m := &Mesh{
		Name:     b.name,
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   EmptyBox(),
	}
	for _, v := range m.Vertices {
		m.Bounds.Expand(v)
	}
	return m
}

// Transformed returns a copy of m with every vertex transformed by t.
func (m *Mesh) Transformed(name string, t mgl32.Mat4) *Mesh {
	b := newBuilder(name)
	for _, v := range m.Vertices {
		b.vertex(t.Mul4x1(v.Vec4(1)).Vec3())
	}
	b.indices = append([]uint32(nil), m.Indices...)
	return b.mesh()
}
