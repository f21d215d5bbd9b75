// Package field samples scalar fields over a rectangle: wave interference,
// moire patterns and Gray-Scott reaction-diffusion. Samples are returned as
// points whose Z carries the field value.
package field

import (
	"math"

	"github.com/chazu/morpho/pkg/geom"
)

// Resolution bounds for the sampled fields, per axis.
const (
	MinResolution = 2
	MaxResolution = 1000
)

// MoireAmplitude scales the moire intensity, which lies in [-1, 1], into Z.
const MoireAmplitude = 5

func checkArea(width, height float64, resolution int) error {
	return geom.FirstError(
		geom.CheckPositive("width", width),
		geom.CheckPositive("height", height),
		geom.CheckRange("resolution", resolution, MinResolution, MaxResolution),
	)
}

// sample visits resolution² lattice points spanning [0,width]×[0,height]. The
// outer loop runs over x, the inner over y.
func sample(width, height float64, resolution int, z func(x, y float64) float64) []geom.Point {
	out := make([]geom.Point, 0, resolution*resolution)
	den := float64(resolution - 1)
	for i := 0; i < resolution; i++ {
		x := width * float64(i) / den
		for j := 0; j < resolution; j++ {
			y := height * float64(j) / den
			out = append(out, geom.Pt(x, y, z(x, y)))
		}
	}
	return out
}

// DefaultSources returns the two sources used when none are given, at a
// quarter and three quarters of the width on the horizontal midline.
func DefaultSources(width, height float64) []geom.Point {
	return []geom.Point{
		geom.Pt(width*0.25, height*0.5, 0),
		geom.Pt(width*0.75, height*0.5, 0),
	}
}

// WaveInterference sums amplitude·sin(2π·d/wavelength) over all sources,
// where d is the planar distance to each source. A nil or empty sources
// slice uses DefaultSources.
func WaveInterference(width, height float64, resolution int, sources []geom.Point, wavelength, amplitude float64) ([]geom.Point, error) {
	if err := geom.FirstError(
		checkArea(width, height, resolution),
		geom.CheckPositive("wavelength", wavelength),
	); err != nil {
		return nil, err
	}
	if math.IsNaN(amplitude) || math.IsInf(amplitude, 0) {
		return nil, geom.Invalid("amplitude", amplitude, "must be finite")
	}
	if len(sources) == 0 {
		sources = DefaultSources(width, height)
	}
	for _, s := range sources {
		if err := geom.CheckPoint("sources", s); err != nil {
			return nil, err
		}
	}

	k := 2 * math.Pi / wavelength
	return sample(width, height, resolution, func(x, y float64) float64 {
		z := 0.0
		for _, s := range sources {
			z += amplitude * math.Sin(k*math.Hypot(x-s.X, y-s.Y))
		}
		return z
	}), nil
}

// Moire overlays two sinusoidal line gratings across the width, the second
// with frequency f2 and rotated by angleDeg, and returns their mean scaled by
// MoireAmplitude.
func Moire(width, height float64, resolution int, f1, f2, angleDeg float64) ([]geom.Point, error) {
	if err := checkArea(width, height, resolution); err != nil {
		return nil, err
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"frequency1", f1}, {"frequency2", f2}, {"angle", angleDeg}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return nil, geom.Invalid(v.name, v.val, "must be finite")
		}
	}

	sin, cos := math.Sincos(geom.DegreesToRadians(angleDeg))
	return sample(width, height, resolution, func(x, y float64) float64 {
		p1 := math.Sin(2 * math.Pi * f1 * x / width)
		x2 := x*cos - y*sin
		p2 := math.Sin(2 * math.Pi * f2 * x2 / width)
		return (p1 + p2) / 2 * MoireAmplitude
	}), nil
}
