package ornament

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// Rosette returns one curve per petal. Petal i spans the sector from angle
// 2πi/petals + rotation to 2π(i+1)/petals + rotation: its ends lie on the
// outer radius and its middle point at radius·(1-petalDepth) on the sector
// bisector. A petal whose three points are collinear under geom.Epsilon
// becomes a pattern.Segment between the ends; otherwise it is a pattern.Arc.
func Rosette(center geom.Point, radius float64, petals int, petalDepth, rotation float64) ([]pattern.Shape, error) {
	if err := validateRosette(center, radius, petals, petalDepth); err != nil {
		return nil, err
	}
	return rosette(center, radius, petals, petalDepth, rotation), nil
}

func validateRosette(center geom.Point, radius float64, petals int, petalDepth float64) error {
	return geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("radius", radius),
		geom.CheckRange("petals", petals, 2, MaxElements),
		geom.CheckOpenUnit("petalDepth", petalDepth),
	)
}

func rosette(center geom.Point, radius float64, petals int, petalDepth, rotation float64) []pattern.Shape {
	step := 2 * math.Pi / float64(petals)
	inner := radius * (1 - petalDepth)
	curves := make([]pattern.Shape, petals)
	for i := range curves {
		a1 := float64(i)*step + rotation
		a2 := a1 + step
		start := geom.PointAtAngle(center, a1, radius)
		end := geom.PointAtAngle(center, a2, radius)
		mid := geom.PointAtAngle(center, a1+step/2, inner)
		if geom.Collinear(start, mid, end) {
			curves[i] = pattern.Segment{A: start, B: end}
			continue
		}
		curves[i] = pattern.Arc{Start: start, Mid: mid, End: end}
	}
	return curves
}

// NestedRosette stacks layers rosettes, outermost first. Layer k has radius
// outerRadius·(layers-k)/layers; odd layers are rotated by half a petal
// width so neighbouring rings interlock.
func NestedRosette(center geom.Point, outerRadius float64, petals, layers int, petalDepth float64) ([][]pattern.Shape, error) {
	if err := geom.FirstError(
		validateRosette(center, outerRadius, petals, petalDepth),
		geom.CheckMin("layers", layers, 1),
	); err != nil {
		return nil, err
	}
	if err := checkElements("layers", layers, float64(petals)*float64(layers)); err != nil {
		return nil, err
	}

	halfPetal := math.Pi / float64(petals)
	stepRadius := outerRadius / float64(layers)
	rings := make([][]pattern.Shape, layers)
	for k := range rings {
		r := outerRadius - float64(k)*stepRadius
		rotation := 0.0
		if k%2 == 1 {
			rotation = halfPetal
		}
		rings[k] = rosette(center, r, petals, petalDepth, rotation)
	}
	return rings, nil
}
