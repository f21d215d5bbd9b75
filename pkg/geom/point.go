package geom

import (
	"fmt"
	"math"
)

// Epsilon is the single tolerance used for every degeneracy check
// (collinearity, zero length, zero area, zero volume).
const Epsilon = 1e-9

// Point is an immutable 3D coordinate triple.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Origin is the point (0, 0, 0).
var Origin = Point{}

// Pt is shorthand for Point{X: x, Y: y, Z: z}.
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k, p.Z * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross returns the cross product p × q.
func (p Point) Cross(q Point) Point {
	return Point{
		p.Y*q.Z - p.Z*q.Y,
		p.Z*q.X - p.X*q.Z,
		p.X*q.Y - p.Y*q.X,
	}
}

// Length returns the Euclidean norm of p treated as a vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// IsFinite reports whether every coordinate is a finite number.
// A non-finite point stands in for a missing one and fails validation.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.Z) && !math.IsInf(p.Z, 0)
}

// ApproxEqual reports whether p and q differ by at most Epsilon per axis.
func (p Point) ApproxEqual(q Point) bool {
	return math.Abs(p.X-q.X) <= Epsilon &&
		math.Abs(p.Y-q.Y) <= Epsilon &&
		math.Abs(p.Z-q.Z) <= Epsilon
}
