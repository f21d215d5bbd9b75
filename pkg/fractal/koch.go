package fractal

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
)

var (
	cos60 = math.Cos(math.Pi / 3)
	sin60 = math.Sin(math.Pi / 3)
)

// KochCurve refines the segment p1→p2 n times. Each level replaces every
// segment (a, e) with a, b, c, d where b and d sit at 1/3 and 2/3 and the
// peak c is b plus the segment vector rotated +60° about Z and scaled by 1/3.
// The result has 4^n segments and 4^n+1 points, starting at p1 and ending
// at p2.
func KochCurve(p1, p2 geom.Point, n int) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("p1", p1),
		geom.CheckPoint("p2", p2),
		geom.CheckRange("iterations", n, 0, MaxKochIterations),
	); err != nil {
		return nil, err
	}
	return kochPoints(p1, p2, n), nil
}

func kochPoints(p1, p2 geom.Point, n int) []geom.Point {
	pts := []geom.Point{p1, p2}
	for level := 0; level < n; level++ {
		next := make([]geom.Point, 0, 4*(len(pts)-1)+1)
		for i := 0; i < len(pts)-1; i++ {
			a, e := pts[i], pts[i+1]
			b := geom.Lerp(a, e, 1.0/3)
			d := geom.Lerp(a, e, 2.0/3)
			next = append(next, a, b, b.Add(rotate60(e.Sub(a)).Scale(1.0/3)), d)
		}
		next = append(next, pts[len(pts)-1])
		pts = next
	}
	return pts
}

// rotate60 rotates v by +60° about the Z axis.
func rotate60(v geom.Point) geom.Point {
	return geom.Point{
		X: v.X*cos60 - v.Y*sin60,
		Y: v.X*sin60 + v.Y*cos60,
		Z: v.Z,
	}
}

// KochSnowflake runs a Koch curve on each edge of an equilateral triangle of
// edge length size and concatenates them into one closed outline with
// 3·4^n points. Edges are walked clockwise (v0→v2→v1) so the +60° peaks
// point away from the center. Shared endpoints appear once; the closing
// point is implied, so n=0 yields exactly the 3 triangle vertices.
func KochSnowflake(center geom.Point, size float64, n int) ([]geom.Point, error) {
	if err := validateSeed(center, size, n, MaxKochIterations); err != nil {
		return nil, err
	}
	return snowflake(center, size, n, false), nil
}

// AntiSnowflake is KochSnowflake with every bump pointing inward. Each edge's
// curve is generated end→start and then reversed back into start→end order,
// which flips the side the peaks fall on while keeping the traversal order
// identical to KochSnowflake.
func AntiSnowflake(center geom.Point, size float64, n int) ([]geom.Point, error) {
	if err := validateSeed(center, size, n, MaxKochIterations); err != nil {
		return nil, err
	}
	return snowflake(center, size, n, true), nil
}

func snowflake(center geom.Point, size float64, n int, inward bool) []geom.Point {
	tri := geom.EquilateralTriangle(center, size)
	edges := [3][2]geom.Point{
		{tri[0], tri[2]},
		{tri[2], tri[1]},
		{tri[1], tri[0]},
	}

	out := make([]geom.Point, 0, 3*pow(4, n))
	for _, e := range edges {
		var curve []geom.Point
		if inward {
			curve = kochPoints(e[1], e[0], n)
			reverse(curve)
		} else {
			curve = kochPoints(e[0], e[1], n)
		}
		// Drop the end point: it starts the next edge (or closes the loop).
		out = append(out, curve[:len(curve)-1]...)
	}
	return out
}

func reverse(pts []geom.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
