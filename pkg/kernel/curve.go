package kernel

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
)

// DefaultArcSegments is the number of chords used to sample an arc.
const DefaultArcSegments = 32

// Curve is a sampled 1D element. Closed curves do not repeat their first
// point.
type Curve struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed"`
}

// Length returns the total chord length, including the closing chord.
func (c *Curve) Length() float64 {
	var l float64
	for i := 1; i < len(c.Points); i++ {
		l += geom.Distance(c.Points[i-1], c.Points[i])
	}
	if c.Closed && len(c.Points) > 1 {
		l += geom.Distance(c.Points[len(c.Points)-1], c.Points[0])
	}
	return l
}

// LineCurve returns the two-point curve from a to b.
func LineCurve(a, b geom.Point) (*Curve, error) {
	if geom.Distance(a, b) <= geom.Epsilon {
		return nil, Degenerate("line", "endpoints coincide")
	}
	return &Curve{Points: []geom.Point{a, b}}, nil
}

// PolylineCurve copies points into a curve. It needs at least two points and
// a non-zero length.
func PolylineCurve(points []geom.Point, closed bool) (*Curve, error) {
	if len(points) < 2 {
		return nil, Degenerate("polyline", "fewer than two points")
	}
	c := &Curve{Points: append([]geom.Point(nil), points...), Closed: closed}
	if c.Length() <= geom.Epsilon {
		return nil, Degenerate("polyline", "zero length")
	}
	return c, nil
}

// ArcCurve samples the circular arc from start through mid to end with
// segments chords. The three points must not be collinear.
func ArcCurve(start, mid, end geom.Point, segments int) (*Curve, error) {
	if segments < 1 {
		segments = DefaultArcSegments
	}
	if geom.Collinear(start, mid, end) {
		return nil, Degenerate("arc", "points are collinear")
	}

	// Circumcenter of the triangle (start, mid, end).
	a := start.Sub(end)
	b := mid.Sub(end)
	axb := a.Cross(b)
	den := 2 * axb.Dot(axb)
	center := end.Add(b.Scale(a.Dot(a)).Sub(a.Scale(b.Dot(b))).Cross(axb).Scale(1 / den))

	// Orthonormal frame in the arc plane, x toward start.
	u := start.Sub(center)
	radius := u.Length()
	u = u.Scale(1 / radius)
	n := axb.Scale(1 / axb.Length())
	v := n.Cross(u)

	angleOf := func(p geom.Point) float64 {
		d := p.Sub(center)
		t := math.Atan2(d.Dot(v), d.Dot(u))
		if t < 0 {
			t += 2 * math.Pi
		}
		return t
	}
	sweep := angleOf(end)
	// The sweep must pass through mid; otherwise go the other way round.
	if angleOf(mid) > sweep {
		sweep -= 2 * math.Pi
	}

	pts := make([]geom.Point, segments+1)
	for i := range pts {
		t := sweep * float64(i) / float64(segments)
		pts[i] = center.Add(u.Scale(radius * math.Cos(t))).Add(v.Scale(radius * math.Sin(t)))
	}
	pts[0], pts[segments] = start, end
	return &Curve{Points: pts}, nil
}
