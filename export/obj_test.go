package export

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/render"
	"nyiyui.ca/hato/hakoniwa/track/layout"
)

func bake(t *testing.T, p layout.Path) *render.Baker {
	d := catalog.DefaultDimensions(10)
	cat, err := catalog.New(d)
	if err != nil {
		t.Fatalf("catalog: %s", err)
	}
	b := render.NewBaker(cat, mgl32.Ident4())
	render.RenderPath(b, d, p)
	return b
}

func TestWriteOBJ(t *testing.T) {
	b := bake(t, layout.Testbench3())
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, b, "frame.mtl"); err != nil {
		t.Fatalf("WriteOBJ: %s", err)
	}
	var vertices, faces, objects int
	var wantVertices, wantFaces int
	for _, d := range b.Draws {
		wantVertices += len(d.Vertices)
		wantFaces += b.Mesh(d).TriangleCount()
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			vertices++
		case "o":
			objects++
		case "f":
			faces++
			for _, f := range fields[1:] {
				i, err := strconv.Atoi(f)
				if err != nil {
					t.Fatalf("face index %q: %s", f, err)
				}
				if i < 1 || i > vertices {
					t.Fatalf("face index %d refers to a vertex not yet written (%d so far)", i, vertices)
				}
			}
		}
	}
	if objects != len(b.Draws) || vertices != wantVertices || faces != wantFaces {
		t.Fatalf("expected %d/%d/%d objects/vertices/faces, got %d/%d/%d", len(b.Draws), wantVertices, wantFaces, objects, vertices, faces)
	}
	if !strings.Contains(buf.String(), "mtllib frame.mtl\n") {
		t.Fatalf("no mtllib line")
	}
}

func TestWriteMTL(t *testing.T) {
	b := bake(t, layout.Testbench1())
	var buf bytes.Buffer
	if err := WriteMTL(&buf, b); err != nil {
		t.Fatalf("WriteMTL: %s", err)
	}
	// track is drawn in rail and ballast colours only
	if n := strings.Count(buf.String(), "newmtl "); n != 2 {
		t.Fatalf("expected 2 materials, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), "newmtl "+materialName(catalog.RailColor)) {
		t.Fatalf("no rail material")
	}
}
