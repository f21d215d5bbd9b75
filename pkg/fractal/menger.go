package fractal

import (
	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/pattern"
)

// mengerOffsets lists the 20 kept grid positions of a 3×3×3 partition in
// x-major order. A position is dropped when two or more of its components
// are zero: that removes the body center and the six face centers.
var mengerOffsets = func() [][3]float64 {
	var out [][3]float64
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				zeros := 0
				for _, c := range []int{x, y, z} {
					if c == 0 {
						zeros++
					}
				}
				if zeros >= 2 {
					continue
				}
				out = append(out, [3]float64{float64(x), float64(y), float64(z)})
			}
		}
	}
	return out
}()

// MengerSponge subdivides a cube of edge length size centered on center n
// times. Every cube becomes the 20 sub-cubes of side size/3 that survive
// the Menger rule. The result holds exactly 20^n cubes.
func MengerSponge(center geom.Point, size float64, n int) ([]pattern.Cube, error) {
	if err := validateSeed(center, size, n, MaxMengerIterations); err != nil {
		return nil, err
	}
	return mengerCubes(center, size, n), nil
}

func mengerCubes(center geom.Point, size float64, n int) []pattern.Cube {
	seed := pattern.Cube{Center: center, Size: size}
	return subdivide(seed, n, len(mengerOffsets), func(c pattern.Cube, children []pattern.Cube) {
		step := c.Size / 3
		for i, o := range mengerOffsets {
			children[i] = pattern.Cube{
				Center: c.Center.Add(geom.Point{X: o[0] * step, Y: o[1] * step, Z: o[2] * step}),
				Size:   step,
			}
		}
	})
}

// MengerWireframe runs the same subdivision as MengerSponge but emits the 12
// edges of each surviving cube (bottom loop, top loop, verticals) instead of
// cube cells: 12·20^n segments.
func MengerWireframe(center geom.Point, size float64, n int) ([]pattern.Segment, error) {
	if err := validateSeed(center, size, n, MaxMengerIterations); err != nil {
		return nil, err
	}
	cubes := mengerCubes(center, size, n)
	segs := make([]pattern.Segment, 0, 12*len(cubes))
	for _, c := range cubes {
		segs = append(segs, c.Edges()...)
	}
	return segs, nil
}
