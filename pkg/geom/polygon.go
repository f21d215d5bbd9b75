package geom

import "math"

// RegularPolygon returns sides vertices evenly spaced on a circle of the
// given radius. Vertex i sits at angle 2πi/sides + rotation - π/2, so with
// no rotation the first vertex lies on the -Y axis from center.
//
// sides must be >= 1; callers that need a usable polygon enforce >= 3.
func RegularPolygon(center Point, radius float64, sides int, rotation float64) []Point {
	if sides < 1 {
		return nil
	}
	points := make([]Point, sides)
	for i := range points {
		angle := 2*math.Pi*float64(i)/float64(sides) + rotation - math.Pi/2
		points[i] = PointAtAngle(center, angle, radius)
	}
	return points
}

// EquilateralTriangle returns the three vertices of an equilateral triangle
// with edge length size centered on center.
func EquilateralTriangle(center Point, size float64) []Point {
	return RegularPolygon(center, size/math.Sqrt(3), 3, 0)
}
