// Package pattern defines the shape descriptors generators emit and the
// named layer collection that groups them for a geometry backend.
package pattern

import "github.com/chazu/morpho/pkg/geom"

// ShapeKind tags a shape descriptor variant.
type ShapeKind int

const (
	KindPolyline    ShapeKind = iota // ordered point sequence, open or closed
	KindSegment                      // single line segment
	KindArc                          // three-point arc
	KindTriangle                     // triangle corner set (Sierpinski)
	KindTetrahedron                  // tetrahedron corner set (Sierpinski 3D)
	KindCube                         // axis-aligned cube cell (Menger)
)

func (k ShapeKind) String() string {
	switch k {
	case KindPolyline:
		return "polyline"
	case KindSegment:
		return "segment"
	case KindArc:
		return "arc"
	case KindTriangle:
		return "triangle"
	case KindTetrahedron:
		return "tetrahedron"
	case KindCube:
		return "cube"
	default:
		return "unknown"
	}
}

// Shape is a sealed tagged variant over the descriptor types below.
type Shape interface {
	Kind() ShapeKind
	shape() // marker method restricting implementations to this package
}

// ---------------------------------------------------------------------------
// Curves
// ---------------------------------------------------------------------------

// Polyline is an ordered point sequence. When Closed is set the last point
// connects back to the first without being repeated.
type Polyline struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed,omitempty"`
}

func (Polyline) Kind() ShapeKind { return KindPolyline }
func (Polyline) shape()          {}

// Segment is a straight edge from A to B.
type Segment struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
}

func (Segment) Kind() ShapeKind { return KindSegment }
func (Segment) shape()          {}

// Arc passes through Start, Mid and End in that order.
type Arc struct {
	Start geom.Point `json:"start"`
	Mid   geom.Point `json:"mid"`
	End   geom.Point `json:"end"`
}

func (Arc) Kind() ShapeKind { return KindArc }
func (Arc) shape()          {}

// ---------------------------------------------------------------------------
// Cells
// ---------------------------------------------------------------------------

// Triangle is a filled triangle given by its corners.
type Triangle struct {
	A geom.Point `json:"a"`
	B geom.Point `json:"b"`
	C geom.Point `json:"c"`
}

func (Triangle) Kind() ShapeKind { return KindTriangle }
func (Triangle) shape()          {}

// Vertices returns the corners in order.
func (t Triangle) Vertices() []geom.Point {
	return []geom.Point{t.A, t.B, t.C}
}

// Tetrahedron is a solid given by its four corners.
type Tetrahedron struct {
	V [4]geom.Point `json:"v"`
}

func (Tetrahedron) Kind() ShapeKind { return KindTetrahedron }
func (Tetrahedron) shape()          {}

// Cube is an axis-aligned cube with edge length Size.
type Cube struct {
	Center geom.Point `json:"center"`
	Size   float64    `json:"size"`
}

func (Cube) Kind() ShapeKind { return KindCube }
func (Cube) shape()          {}

// Corners returns the 8 corners: bottom face loop then top face loop.
func (c Cube) Corners() [8]geom.Point {
	h := c.Size / 2
	x, y, z := c.Center.X, c.Center.Y, c.Center.Z
	return [8]geom.Point{
		{X: x - h, Y: y - h, Z: z - h},
		{X: x + h, Y: y - h, Z: z - h},
		{X: x + h, Y: y + h, Z: z - h},
		{X: x - h, Y: y + h, Z: z - h},
		{X: x - h, Y: y - h, Z: z + h},
		{X: x + h, Y: y - h, Z: z + h},
		{X: x + h, Y: y + h, Z: z + h},
		{X: x - h, Y: y + h, Z: z + h},
	}
}

// Edges returns the 12 cube edges: bottom loop, top loop, then 4 verticals.
func (c Cube) Edges() []Segment {
	v := c.Corners()
	edges := make([]Segment, 0, 12)
	for i := 0; i < 4; i++ {
		edges = append(edges, Segment{A: v[i], B: v[(i+1)%4]})
	}
	for i := 0; i < 4; i++ {
		edges = append(edges, Segment{A: v[4+i], B: v[4+(i+1)%4]})
	}
	for i := 0; i < 4; i++ {
		edges = append(edges, Segment{A: v[i], B: v[4+i]})
	}
	return edges
}
