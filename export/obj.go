// Package export writes baked frames as Wavefront OBJ.
package export

import (
	"bufio"
	"fmt"
	"io"

	"nyiyui.ca/hato/hakoniwa/catalog"
	"nyiyui.ca/hato/hakoniwa/render"
)

func materialName(c catalog.Color) string {
	return fmt.Sprintf("flat_%02x%02x%02x", byte(c.R*255+0.5), byte(c.G*255+0.5), byte(c.B*255+0.5))
}

// WriteOBJ writes every draw of b as its own object, in world space.
// If mtllib is not empty, faces reference flat colour materials from that file (see WriteMTL).
func WriteOBJ(w io.Writer, b *render.Baker, mtllib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d objects\n", len(b.Draws))
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	offset := uint32(1)
	for i, d := range b.Draws {
		fmt.Fprintf(bw, "o %s.%d\n", d.ID, i)
		if mtllib != "" {
			fmt.Fprintf(bw, "usemtl %s\n", materialName(d.Color))
		}
		for _, v := range d.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2])
		}
		idx := b.Mesh(d).Indices
		for j := 0; j+2 < len(idx); j += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n", idx[j]+offset, idx[j+1]+offset, idx[j+2]+offset)
		}
		offset += uint32(len(d.Vertices))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// WriteMTL writes one material per distinct colour drawn in b.
func WriteMTL(w io.Writer, b *render.Baker) error {
	bw := bufio.NewWriter(w)
	seen := map[catalog.Color]bool{}
	for _, d := range b.Draws {
		if seen[d.Color] {
			continue
		}
		seen[d.Color] = true
		fmt.Fprintf(bw, "newmtl %s\nKd %g %g %g\n\n", materialName(d.Color), d.Color.R, d.Color.G, d.Color.B)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write mtl: %w", err)
	}
	return nil
}
