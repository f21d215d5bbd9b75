package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/kernel"
)

// tetraSDF is the intersection of the four face half-spaces of a
// tetrahedron. The distance is the largest signed plane distance, exact
// inside and a lower bound outside.
type tetraSDF struct {
	normals [4]geom.Point
	offsets [4]float64
	bb      sdf.Box3
}

// faces lists, for each face, the vertex indices on it. Face i is opposite
// vertex i.
var faces = [4][3]int{{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}}

func newTetra(v [4]geom.Point) (*tetraSDF, error) {
	if geom.Coplanar(v[0], v[1], v[2], v[3]) {
		return nil, kernel.Degenerate("tetrahedron", "zero volume")
	}

	t := &tetraSDF{}
	for i, f := range faces {
		a, b, c := v[f[0]], v[f[1]], v[f[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		n = n.Scale(1 / n.Length())
		// Point away from the opposite vertex.
		if n.Dot(v[i].Sub(a)) > 0 {
			n = n.Scale(-1)
		}
		t.normals[i] = n
		t.offsets[i] = n.Dot(a)
	}

	lo, hi := v[0], v[0]
	for _, p := range v[1:] {
		lo = geom.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z))
		hi = geom.Pt(math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z))
	}
	t.bb = sdf.Box3{Min: vec(lo), Max: vec(hi)}
	return t, nil
}

// Evaluate returns the signed distance estimate at p.
func (t *tetraSDF) Evaluate(p v3.Vec) float64 {
	q := geom.Pt(p.X, p.Y, p.Z)
	d := math.Inf(-1)
	for i, n := range t.normals {
		d = math.Max(d, n.Dot(q)-t.offsets[i])
	}
	return d
}

// BoundingBox returns the box spanned by the vertices.
func (t *tetraSDF) BoundingBox() sdf.Box3 {
	return t.bb
}
