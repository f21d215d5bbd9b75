// Package fractal implements the recursive subdivision generators: Koch
// curves and snowflakes, Sierpinski triangles and tetrahedra, and the Menger
// sponge. Every generator validates its parameters before doing any work and
// returns freshly allocated output.
package fractal

import "github.com/chazu/morpho/pkg/geom"

// Iteration caps. Output grows as 4^n (Koch, tetrahedron), 3^n (triangle)
// and 20^n (Menger).
const (
	MaxKochIterations                  = 8
	MaxSierpinskiTriangleIterations    = 10
	MaxSierpinskiTetrahedronIterations = 6
	MaxMengerIterations                = 4
)

// CountKochSegments returns the segment count of a Koch curve after n levels.
func CountKochSegments(n int) int { return pow(4, n) }

// CountSierpinskiTriangles returns 3^n.
func CountSierpinskiTriangles(n int) int { return pow(3, n) }

// CountSierpinskiTetrahedra returns 4^n.
func CountSierpinskiTetrahedra(n int) int { return pow(4, n) }

// CountMengerCubes returns 20^n.
func CountMengerCubes(n int) int { return pow(20, n) }

// validateSeed checks the parameters every center/size/iterations generator
// shares.
func validateSeed(center geom.Point, size float64, iterations, maxIterations int) error {
	return geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("size", size),
		geom.CheckRange("iterations", iterations, 0, maxIterations),
	)
}
