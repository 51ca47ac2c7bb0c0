package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/track/place"
)

var ErrStackUnderflow = errors.New("matrix stack underflow")

// Baked is one draw call with its mesh moved into world space.
type Baked struct {
	ID       catalog.MeshID
	Color    catalog.Color
	Matrix   mgl32.Mat4
	Vertices []mgl32.Vec3
	Bounds   catalog.Box
}

// Baker is a Renderer with a real matrix stack.
// Each Draw is baked into world space, which is what exporters and geometry checks need.
type Baker struct {
	cat   *catalog.Catalog
	stack []mgl32.Mat4
	color catalog.Color
	// Draws are the baked draw calls, in order.
	Draws []Baked
	// Bounds contains every baked vertex.
	Bounds catalog.Box
	err    error
}

var _ Renderer = (*Baker)(nil)

// NewBaker returns a Baker drawing meshes from cat, starting from base (usually the identity or a view matrix).
func NewBaker(cat *catalog.Catalog, base mgl32.Mat4) *Baker {
	return &Baker{
		cat:    cat,
		stack:  []mgl32.Mat4{base},
		Bounds: catalog.EmptyBox(),
	}
}

func (b *Baker) top() *mgl32.Mat4 {
	return &b.stack[len(b.stack)-1]
}

func (b *Baker) PushMatrix() {
	b.stack = append(b.stack, *b.top())
}

func (b *Baker) PopMatrix() {
	if len(b.stack) == 1 {
		b.err = ErrStackUnderflow
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *Baker) Translate(v mgl32.Vec3) {
	t := b.top()
	*t = t.Mul4(place.T(v[0], v[1], v[2]).Matrix())
}

func (b *Baker) Rotate(deg float32, axis mgl32.Vec3) {
	t := b.top()
	*t = t.Mul4(place.RAxis(deg, axis).Matrix())
}

func (b *Baker) SetFlatColor(c catalog.Color) {
	b.color = c
}

func (b *Baker) Draw(id catalog.MeshID) {
	m, ok := b.cat.Get(id)
	if !ok {
		return
	}
	mat := *b.top()
	d := Baked{
		ID:       id,
		Color:    b.color,
		Matrix:   mat,
		Vertices: make([]mgl32.Vec3, len(m.Vertices)),
		Bounds:   catalog.EmptyBox(),
	}
	for i, v := range m.Vertices {
		w := place.Point(mat, v)
		d.Vertices[i] = w
		d.Bounds.Expand(w)
	}
	b.Bounds.Union(d.Bounds)
	b.Draws = append(b.Draws, d)
}

// Depth returns the number of pushed matrices not yet popped.
func (b *Baker) Depth() int {
	return len(b.stack) - 1
}

// Err returns ErrStackUnderflow if there was ever a pop without a push.
func (b *Baker) Err() error {
	return b.err
}

// Mesh returns the catalog mesh of d, for its indices.
func (b *Baker) Mesh(d Baked) *catalog.Mesh {
	return b.cat.MustGet(d.ID)
}
