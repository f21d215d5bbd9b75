package engine

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/chazu/morpho/pkg/field"
	"github.com/chazu/morpho/pkg/fractal"
	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/lsystem"
	"github.com/chazu/morpho/pkg/ornament"
	"github.com/chazu/morpho/pkg/pattern"
	"github.com/chazu/morpho/pkg/spiral"
)

// Script defaults for optional arguments.
const (
	defaultIterations = 3
	defaultSize       = 100
	defaultRadius     = 50
	defaultPoints     = 8
	defaultInnerRatio = 0.4
	defaultPetals     = 8
	defaultPetalDepth = 0.3
	defaultLSysDepth  = 4
	defaultStep       = 5
)

// generator is a script builtin that produces one layer of shapes.
type generator struct {
	name  string
	build func(r *argReader) ([]pattern.Shape, error)
}

// Generators returns the names of all generator builtins, sorted.
func Generators() []string {
	names := lo.Map(generators, func(g generator, _ int) string { return g.name })
	sort.Strings(names)
	return names
}

// shapesOf widens a slice of one descriptor type to []pattern.Shape.
func shapesOf[T pattern.Shape](xs []T) []pattern.Shape {
	return lo.Map(xs, func(x T, _ int) pattern.Shape { return x })
}

func polylines(runs [][]geom.Point, closed bool) []pattern.Shape {
	return lo.Map(runs, func(pts []geom.Point, _ int) pattern.Shape {
		return pattern.Polyline{Points: pts, Closed: closed}
	})
}

func polyline(pts []geom.Point, closed bool) []pattern.Shape {
	return []pattern.Shape{pattern.Polyline{Points: pts, Closed: closed}}
}

// seed reads the arguments shared by the fractal seeds.
func seed(r *argReader) (center geom.Point, size float64, n int) {
	return r.point("center"), r.float("size", defaultSize), r.int("iterations", defaultIterations)
}

var generators = []generator{
	// -----------------------------------------------------------------------
	// Fractals
	// -----------------------------------------------------------------------

	// (koch-curve :start (vec3 0 0 0) :end (vec3 90 0 0) :iterations 3)
	{"koch-curve", func(r *argReader) ([]pattern.Shape, error) {
		a, b := r.point("start"), r.point("end")
		n := r.int("iterations", defaultIterations)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := fractal.KochCurve(a, b, n)
		if err != nil {
			return nil, err
		}
		return polyline(pts, false), nil
	}},

	// (koch-snowflake :center (vec3 0 0 0) :size 100 :iterations 3)
	{"koch-snowflake", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := fractal.KochSnowflake(c, size, n)
		if err != nil {
			return nil, err
		}
		return polyline(pts, true), nil
	}},

	{"anti-snowflake", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := fractal.AntiSnowflake(c, size, n)
		if err != nil {
			return nil, err
		}
		return polyline(pts, true), nil
	}},

	{"sierpinski-triangle", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		tris, err := fractal.SierpinskiTriangle(c, size, n)
		if err != nil {
			return nil, err
		}
		return shapesOf(tris), nil
	}},

	{"sierpinski-tetrahedron", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		tets, err := fractal.SierpinskiTetrahedron(c, size, n)
		if err != nil {
			return nil, err
		}
		return shapesOf(tets), nil
	}},

	{"menger-sponge", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		cubes, err := fractal.MengerSponge(c, size, n)
		if err != nil {
			return nil, err
		}
		return shapesOf(cubes), nil
	}},

	{"menger-wireframe", func(r *argReader) ([]pattern.Shape, error) {
		c, size, n := seed(r)
		if err := r.done(); err != nil {
			return nil, err
		}
		segs, err := fractal.MengerWireframe(c, size, n)
		if err != nil {
			return nil, err
		}
		return shapesOf(segs), nil
	}},

	// -----------------------------------------------------------------------
	// Ornaments
	// -----------------------------------------------------------------------

	// (star-polygon :center (vec3 0 0 0) :radius 50 :points 8 :inner-ratio 0.4)
	{"star-polygon", func(r *argReader) ([]pattern.Shape, error) {
		c := r.point("center")
		radius := r.float("radius", defaultRadius)
		points := r.int("points", defaultPoints)
		inner := r.float("inner-ratio", defaultInnerRatio)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := ornament.StarPolygon(c, radius, points, inner)
		if err != nil {
			return nil, err
		}
		// The outline already repeats its first vertex.
		return polyline(pts, false), nil
	}},

	// (star-grid :origin (vec3 0 0 0) :width 100 :height 100 :cell-size 20)
	{"star-grid", func(r *argReader) ([]pattern.Shape, error) {
		o := r.point("origin")
		w := r.float("width", defaultSize)
		h := r.float("height", defaultSize)
		cell := r.float("cell-size", 20)
		points := r.int("points", defaultPoints)
		inner := r.float("inner-ratio", defaultInnerRatio)
		if err := r.done(); err != nil {
			return nil, err
		}
		stars, err := ornament.StarGrid(o, w, h, cell, points, inner)
		if err != nil {
			return nil, err
		}
		return polylines(stars, false), nil
	}},

	{"star-connections", func(r *argReader) ([]pattern.Shape, error) {
		c := r.point("center")
		radius := r.float("radius", defaultRadius)
		points := r.int("points", defaultPoints)
		if err := r.done(); err != nil {
			return nil, err
		}
		chords, err := ornament.StarConnections(c, radius, points)
		if err != nil {
			return nil, err
		}
		return shapesOf(chords), nil
	}},

	// (rosette :center (vec3 0 0 0) :radius 50 :petals 8 :petal-depth 0.3 :rotation 0)
	{"rosette", func(r *argReader) ([]pattern.Shape, error) {
		c := r.point("center")
		radius := r.float("radius", defaultRadius)
		petals := r.int("petals", defaultPetals)
		depth := r.float("petal-depth", defaultPetalDepth)
		rot := r.float("rotation", 0)
		if err := r.done(); err != nil {
			return nil, err
		}
		return ornament.Rosette(c, radius, petals, depth, geom.DegreesToRadians(rot))
	}},

	// Rings are flattened outermost first.
	{"nested-rosette", func(r *argReader) ([]pattern.Shape, error) {
		c := r.point("center")
		radius := r.float("radius", defaultRadius)
		petals := r.int("petals", defaultPetals)
		layers := r.int("layers", 3)
		depth := r.float("petal-depth", defaultPetalDepth)
		if err := r.done(); err != nil {
			return nil, err
		}
		rings, err := ornament.NestedRosette(c, radius, petals, layers, depth)
		if err != nil {
			return nil, err
		}
		return lo.Flatten(rings), nil
	}},

	// (girih-tile :tile :decagon :center (vec3 0 0 0) :size 20)
	{"girih-tile", func(r *argReader) ([]pattern.Shape, error) {
		tile, c, size, err := girihArgs(r)
		if err != nil {
			return nil, err
		}
		pts, err := ornament.GirihTile(tile, c, size)
		if err != nil {
			return nil, err
		}
		return polyline(pts, true), nil
	}},

	// Strapwork over the named tile, or over explicit :vertices.
	{"girih-strapwork", func(r *argReader) ([]pattern.Shape, error) {
		verts := r.points("vertices")
		tile, c, size, err := girihArgs(r)
		if err != nil {
			return nil, err
		}
		if verts == nil {
			if verts, err = ornament.GirihTile(tile, c, size); err != nil {
				return nil, err
			}
		}
		segs, err := ornament.Strapwork(c, verts)
		if err != nil {
			return nil, err
		}
		return shapesOf(segs), nil
	}},

	{"girih-grid", func(r *argReader) ([]pattern.Shape, error) {
		tile, err := ornament.ParseTileType(r.str("tile", "decagon"))
		o := r.point("origin")
		size := r.float("size", 20)
		cols := r.int("cols", 3)
		rows := r.int("rows", 3)
		if err := geom.FirstError(err, r.done()); err != nil {
			return nil, err
		}
		tiles, err := ornament.GirihGrid(tile, o, size, cols, rows)
		if err != nil {
			return nil, err
		}
		return shapesOf(tiles), nil
	}},

	// -----------------------------------------------------------------------
	// L-systems and spirals
	// -----------------------------------------------------------------------

	// (lsystem :preset "dragon" :center (vec3 0 0 0) :iterations 8 :length 2)
	// (lsystem :axiom "F" :rules "F=F+F-F" :angle 90 :center (vec3 0 0 0))
	{"lsystem", func(r *argReader) ([]pattern.Shape, error) {
		preset := r.str("preset", "")
		axiom := r.str("axiom", "")
		rules := r.str("rules", "")
		angle := r.float("angle", 90)
		draw := r.str("draw", "")
		n := r.int("iterations", defaultLSysDepth)
		mode := r.str("mode", "2d")
		opts := lsystem.TurtleOptions{
			Start:   r.point("center"),
			Heading: r.float("heading", 90),
			Length:  r.float("length", defaultStep),
			Decay:   r.float("decay", 1),
		}
		if err := r.done(); err != nil {
			return nil, err
		}

		var sys *lsystem.System
		var err error
		if preset != "" {
			sys, err = lsystem.FromPreset(preset)
		} else {
			sys, err = lsystem.New(axiom, rules, angle)
		}
		if err != nil {
			return nil, err
		}
		if draw != "" {
			sys.Draw = draw
		}

		cmds, err := sys.Generate(n)
		if err != nil {
			return nil, err
		}
		var segs []pattern.Segment
		switch mode {
		case "2d":
			segs, err = sys.Interpret2D(cmds, opts)
		case "3d":
			segs, err = sys.Interpret3D(cmds, opts)
		default:
			return nil, geom.Invalid("mode", mode, "expected 2d or 3d")
		}
		if err != nil {
			return nil, err
		}
		return shapesOf(segs), nil
	}},

	// (spiral :kind :archimedean :center (vec3 0 0 0) :turns 5 :spacing 4)
	{"spiral", func(r *argReader) ([]pattern.Shape, error) {
		kind := r.str("kind", "archimedean")
		c := r.point("center")
		turns := r.float("turns", 5)
		perTurn := r.int("points-per-turn", 36)
		var pts []geom.Point
		var err error
		switch kind {
		case "archimedean":
			spacing := r.float("spacing", defaultStep)
			if err := r.done(); err != nil {
				return nil, err
			}
			pts, err = spiral.Archimedean(c, turns, spacing, perTurn)
		case "logarithmic":
			growth := r.float("growth", 0.2)
			r0 := r.float("initial-radius", 1)
			if err := r.done(); err != nil {
				return nil, err
			}
			pts, err = spiral.Logarithmic(c, turns, growth, r0, perTurn)
		case "fermat":
			maxR := r.float("max-radius", defaultRadius)
			count := r.int("count", 500)
			k := r.float("c", defaultStep)
			if err := r.done(); err != nil {
				return nil, err
			}
			pts, err = spiral.Fermat(c, maxR, count, k)
		default:
			if err := r.done(); err != nil {
				return nil, err
			}
			return nil, geom.Invalid("kind", kind, "expected archimedean, logarithmic or fermat")
		}
		if err != nil {
			return nil, err
		}
		return polyline(pts, false), nil
	}},

	// Seeds are emitted as cubes of edge :seed-size.
	{"phyllotaxis", func(r *argReader) ([]pattern.Shape, error) {
		c := r.point("center")
		count := r.int("count", 200)
		scale := r.float("scale", defaultStep)
		golden := r.boolean("golden", true)
		seedSize := r.float("seed-size", scale*0.5)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := spiral.Phyllotaxis(c, count, scale, golden)
		if err != nil {
			return nil, err
		}
		return cubesAt(pts, seedSize)
	}},

	// -----------------------------------------------------------------------
	// Fields
	// -----------------------------------------------------------------------

	// Each sampled column along x becomes one polyline.
	{"wave-interference", func(r *argReader) ([]pattern.Shape, error) {
		w, h, res := fieldArea(r)
		sources := r.points("sources")
		wavelength := r.float("wavelength", 10)
		amp := r.float("amplitude", 5)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := field.WaveInterference(w, h, res, sources, wavelength, amp)
		if err != nil {
			return nil, err
		}
		return polylines(lo.Chunk(pts, res), false), nil
	}},

	{"moire", func(r *argReader) ([]pattern.Shape, error) {
		w, h, res := fieldArea(r)
		f1 := r.float("frequency1", 10)
		f2 := r.float("frequency2", 11)
		angle := r.float("angle", 5)
		if err := r.done(); err != nil {
			return nil, err
		}
		pts, err := field.Moire(w, h, res, f1, f2, angle)
		if err != nil {
			return nil, err
		}
		return polylines(lo.Chunk(pts, res), false), nil
	}},

	// (reaction-diffusion :preset "coral" :width 60 :height 60 :iterations 500)
	{"reaction-diffusion", func(r *argReader) ([]pattern.Shape, error) {
		cfg := field.DefaultRDConfig()
		preset := r.str("preset", "")
		cfg.Width = r.int("width", cfg.Width)
		cfg.Height = r.int("height", cfg.Height)
		cfg.Iterations = r.int("iterations", cfg.Iterations)
		cfg.Feed = r.float("feed", cfg.Feed)
		cfg.Kill = r.float("kill", cfg.Kill)
		cfg.Seed = int64(r.int("seed", int(cfg.Seed)))
		seeding := r.str("seeding", "spots")
		scaleXY := r.float("scale", 1)
		scaleZ := r.float("height-scale", 10)
		threshold := r.float("threshold", 0.25)
		if err := r.done(); err != nil {
			return nil, err
		}
		switch seeding {
		case "spots":
			cfg.Seeding = field.SeedSpots
		case "noise":
			cfg.Seeding = field.SeedNoise
		default:
			return nil, geom.Invalid("seeding", seeding, "expected spots or noise")
		}
		if preset != "" {
			var err error
			if cfg, err = cfg.WithPreset(preset); err != nil {
				return nil, err
			}
		}
		grid, err := field.ReactionDiffusion(cfg)
		if err != nil {
			return nil, err
		}
		return cubesAt(field.ToPoints(grid, scaleXY, scaleZ, threshold), scaleXY)
	}},
}

// girihArgs reads :tile, :center and :size and finishes the reader.
func girihArgs(r *argReader) (ornament.TileType, geom.Point, float64, error) {
	tok := r.str("tile", "decagon")
	c := r.point("center")
	size := r.float("size", 20)
	if err := r.done(); err != nil {
		return 0, c, 0, err
	}
	tile, err := ornament.ParseTileType(tok)
	return tile, c, size, err
}

// fieldArea reads the sampled rectangle shared by the field builtins.
func fieldArea(r *argReader) (width, height float64, resolution int) {
	return r.float("width", defaultSize), r.float("height", defaultSize), r.int("resolution", 50)
}

func cubesAt(pts []geom.Point, size float64) ([]pattern.Shape, error) {
	if err := geom.CheckPositive("size", size); err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	return lo.Map(pts, func(p geom.Point, _ int) pattern.Shape {
		return pattern.Cube{Center: p, Size: size}
	}), nil
}
