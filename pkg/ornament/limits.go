package ornament

import (
	"fmt"

	"github.com/chazu/morpho/pkg/geom"
)

// MaxElements caps the number of vertices or curves a single call emits.
// Counts are computed in float64 before anything is allocated, so huge
// grids are rejected rather than overflowing.
const MaxElements = 1_000_000

func checkElements(param string, value any, n float64) error {
	if n > MaxElements {
		return geom.Invalid(param, value, fmt.Sprintf("would emit %.0f elements, max %d", n, MaxElements))
	}
	return nil
}

// starVertices is the vertex count of one closed star outline.
func starVertices(points int) float64 {
	return 2*float64(points) + 1
}
