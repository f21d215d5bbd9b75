// Package spiral samples planar spirals and phyllotaxis arrangements in the
// plane z = center.Z.
package spiral

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
)

// MaxPoints caps the number of samples any generator in this package emits.
const MaxPoints = 1_000_000

// GoldenAngle is the phyllotaxis divergence angle in degrees, 360/φ².
const GoldenAngle = 137.5077640500378

// fermatStep is the polar angle advanced per Fermat sample.
const fermatStep = 2 * math.Pi / 10

func checkSamples(turns float64, perTurn int) error {
	if err := geom.FirstError(
		geom.CheckPositive("turns", turns),
		geom.CheckMin("pointsPerTurn", perTurn, 1),
	); err != nil {
		return err
	}
	if turns*float64(perTurn) > MaxPoints {
		return geom.Invalid("turns", turns, "too many samples")
	}
	return nil
}

// polar samples r(θ) at θ = 2πi/perTurn for i in [0, turns·perTurn].
func polar(center geom.Point, turns float64, perTurn int, r func(theta float64) float64) []geom.Point {
	total := int(turns * float64(perTurn))
	out := make([]geom.Point, total+1)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / float64(perTurn)
		out[i] = geom.PointAtAngle(center, theta, r(theta))
	}
	return out
}

// Archimedean returns an Archimedean spiral whose successive turns are spacing
// apart: r = spacing·θ/2π.
func Archimedean(center geom.Point, turns, spacing float64, pointsPerTurn int) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		checkSamples(turns, pointsPerTurn),
		geom.CheckPositive("spacing", spacing),
	); err != nil {
		return nil, err
	}
	return polar(center, turns, pointsPerTurn, func(theta float64) float64 {
		return spacing * theta / (2 * math.Pi)
	}), nil
}

// Logarithmic returns the self-similar spiral r = initialRadius·e^(growth·θ).
// A negative growth winds inward.
func Logarithmic(center geom.Point, turns, growth, initialRadius float64, pointsPerTurn int) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		checkSamples(turns, pointsPerTurn),
		geom.CheckPositive("initialRadius", initialRadius),
	); err != nil {
		return nil, err
	}
	if math.IsNaN(growth) || math.IsInf(growth, 0) {
		return nil, geom.Invalid("growth", growth, "must be finite")
	}
	return polar(center, turns, pointsPerTurn, func(theta float64) float64 {
		return initialRadius * math.Exp(growth*theta)
	}), nil
}

// Fermat samples up to count points of r = c·√θ with θ advancing by a tenth
// of a turn per point. Sampling stops at the first point beyond maxRadius.
func Fermat(center geom.Point, maxRadius float64, count int, c float64) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckPositive("maxRadius", maxRadius),
		geom.CheckRange("count", count, 0, MaxPoints),
		geom.CheckPositive("c", c),
	); err != nil {
		return nil, err
	}
	out := make([]geom.Point, 0, count)
	for i := 0; i < count; i++ {
		theta := float64(i) * fermatStep
		r := c * math.Sqrt(theta)
		if r > maxRadius {
			break
		}
		out = append(out, geom.PointAtAngle(center, theta, r))
	}
	return out, nil
}

// Phyllotaxis places count seeds at radius scale·√i, turning by GoldenAngle
// per seed, or by 360/φ when golden is false.
func Phyllotaxis(center geom.Point, count int, scale float64, golden bool) ([]geom.Point, error) {
	if err := geom.FirstError(
		geom.CheckPoint("center", center),
		geom.CheckRange("count", count, 0, MaxPoints),
		geom.CheckPositive("scale", scale),
	); err != nil {
		return nil, err
	}
	step := GoldenAngle
	if !golden {
		step = 360 / math.Phi
	}
	out := make([]geom.Point, count)
	for i := range out {
		theta := geom.DegreesToRadians(float64(i) * step)
		out[i] = geom.PointAtAngle(center, theta, scale*math.Sqrt(float64(i)))
	}
	return out, nil
}
