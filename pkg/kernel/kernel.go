// Package kernel defines the geometry backend that turns generated
// primitives into curves and solids. Backends (see pkg/kernel/sdfx) live
// behind the Kernel interface so realization never depends on one library.
package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/morpho/pkg/geom"
)

// ErrDegenerate is wrapped by every constructor error caused by input that is
// geometrically degenerate under geom.Epsilon: coincident points, collinear
// arc or patch points, zero-volume solids.
var ErrDegenerate = errors.New("degenerate geometry")

// DegenerateError reports which constructor rejected its input.
type DegenerateError struct {
	Op     string
	Reason string
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *DegenerateError) Unwrap() error { return ErrDegenerate }

// Degenerate builds a *DegenerateError for op.
func Degenerate(op, reason string) error {
	return &DegenerateError{Op: op, Reason: reason}
}

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds backend geometry from generated primitives.
type Kernel interface {
	// Curves
	Line(a, b geom.Point) (*Curve, error)
	Arc(start, mid, end geom.Point) (*Curve, error)
	Polyline(points []geom.Point, closed bool) (*Curve, error)

	// Solids
	Patch(a, b, c geom.Point) (Solid, error)
	Box(center geom.Point, size float64) (Solid, error)
	Tetrahedron(v [4]geom.Point) (Solid, error)

	// Join unions solids into one.
	Join(solids []Solid) (Solid, error)

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
