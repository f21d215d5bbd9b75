package geom

import "math"

// PointAtAngle places a point at the given angle (radians, 0 along +X) and
// distance from center, in the center's Z plane.
func PointAtAngle(center Point, angle, distance float64) Point {
	return Point{
		X: center.X + distance*math.Cos(angle),
		Y: center.Y + distance*math.Sin(angle),
		Z: center.Z,
	}
}

// Lerp interpolates linearly from p1 (t=0) to p2 (t=1). t is not clamped,
// so values outside [0, 1] extrapolate along the line.
func Lerp(p1, p2 Point, t float64) Point {
	return Point{
		X: p1.X + (p2.X-p1.X)*t,
		Y: p1.Y + (p2.Y-p1.Y)*t,
		Z: p1.Z + (p2.Z-p1.Z)*t,
	}
}

// Midpoint returns Lerp(p1, p2, 0.5).
func Midpoint(p1, p2 Point) Point {
	return Lerp(p1, p2, 0.5)
}

// Distance returns the Euclidean distance between p1 and p2.
func Distance(p1, p2 Point) float64 {
	return p2.Sub(p1).Length()
}

// Centroid returns the arithmetic mean of points.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrEmptyInput
	}
	var sum Point
	for _, p := range points {
		sum = sum.Add(p)
	}
	n := float64(len(points))
	return Point{sum.X / n, sum.Y / n, sum.Z / n}, nil
}

// RotateAbout rotates p around center in the XY plane by angle radians.
// Z is preserved.
func RotateAbout(p, center Point, angle float64) Point {
	cos, sin := math.Cos(angle), math.Sin(angle)
	dx := p.X - center.X
	dy := p.Y - center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
		Z: p.Z,
	}
}

// ScaleAbout scales p relative to center by k on all three axes.
func ScaleAbout(p, center Point, k float64) Point {
	return center.Add(p.Sub(center).Scale(k))
}

// Collinear reports whether a, b and c lie on one line. The spanned area is
// compared against the product of the edge lengths, so the test does not
// depend on the size of the triangle. Coincident points count as collinear.
func Collinear(a, b, c Point) bool {
	ab, ac := b.Sub(a), c.Sub(a)
	return ab.Cross(ac).Length() <= Epsilon*ab.Length()*ac.Length()
}

// Coplanar reports whether a, b, c and d lie in one plane. Like Collinear,
// the spanned volume is measured relative to the edge lengths from a.
func Coplanar(a, b, c, d Point) bool {
	ab, ac, ad := b.Sub(a), c.Sub(a), d.Sub(a)
	return math.Abs(ab.Cross(ac).Dot(ad)) <= Epsilon*ab.Length()*ac.Length()*ad.Length()
}

// SignedArea returns the shoelace area of a closed XY polygon. Positive for
// counter-clockwise order, negative for clockwise.
func SignedArea(points []Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// ---------------------------------------------------------------------------
// Scalar helpers
// ---------------------------------------------------------------------------

// DegreesToRadians converts degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// MapValue maps value linearly from [inMin, inMax] onto [outMin, outMax].
func MapValue(value, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (value-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Clamp limits value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}

// GoldenRatio returns φ = (1 + √5) / 2.
func GoldenRatio() float64 {
	return math.Phi
}

// Fibonacci returns the first n Fibonacci numbers starting 0, 1.
func Fibonacci(n int) []int {
	if n <= 0 {
		return nil
	}
	seq := make([]int, n)
	for i := 1; i < n; i++ {
		if i == 1 {
			seq[i] = 1
			continue
		}
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq
}
