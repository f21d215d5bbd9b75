package fractal

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// SierpinskiTriangle subdivides an equilateral triangle of edge length size
// n times. Each level replaces every triangle by its three corner triangles
// built from the edge midpoints; the central triangle is never produced.
// The result holds exactly 3^n triangles in a stable order.
func SierpinskiTriangle(center geom.Point, size float64, n int) ([]pattern.Triangle, error) {
	if err := validateSeed(center, size, n, MaxSierpinskiTriangleIterations); err != nil {
		return nil, err
	}

	v := geom.EquilateralTriangle(center, size)
	seed := pattern.Triangle{A: v[0], B: v[1], C: v[2]}

	return subdivide(seed, n, 3, func(t pattern.Triangle, children []pattern.Triangle) {
		ab := geom.Midpoint(t.A, t.B)
		bc := geom.Midpoint(t.B, t.C)
		ca := geom.Midpoint(t.C, t.A)
		children[0] = pattern.Triangle{A: t.A, B: ab, C: ca}
		children[1] = pattern.Triangle{A: ab, B: t.B, C: bc}
		children[2] = pattern.Triangle{A: ca, B: bc, C: t.C}
	}), nil
}

// RegularTetrahedron returns the corners of a regular tetrahedron with edge
// length size: a base triangle of circumradius size/√3 around center and an
// apex size·√(2/3) above it.
func RegularTetrahedron(center geom.Point, size float64) pattern.Tetrahedron {
	base := geom.RegularPolygon(center, size/math.Sqrt(3), 3, 0)
	apex := center.Add(geom.Point{Z: size * math.Sqrt(2.0/3.0)})
	return pattern.Tetrahedron{V: [4]geom.Point{base[0], base[1], base[2], apex}}
}

// SierpinskiTetrahedron subdivides a regular tetrahedron n times. Child i
// keeps corner i and replaces every other corner j by the midpoint of edge
// (i, j), so corner order and orientation carry through each level. The
// central octahedron is never produced. The result holds exactly 4^n
// tetrahedra.
func SierpinskiTetrahedron(center geom.Point, size float64, n int) ([]pattern.Tetrahedron, error) {
	if err := validateSeed(center, size, n, MaxSierpinskiTetrahedronIterations); err != nil {
		return nil, err
	}

	seed := RegularTetrahedron(center, size)

	return subdivide(seed, n, 4, func(t pattern.Tetrahedron, children []pattern.Tetrahedron) {
		for i := 0; i < 4; i++ {
			var c pattern.Tetrahedron
			for j := 0; j < 4; j++ {
				if j == i {
					c.V[j] = t.V[i]
				} else {
					c.V[j] = geom.Midpoint(t.V[i], t.V[j])
				}
			}
			children[i] = c
		}
	}), nil
}
