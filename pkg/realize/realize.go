// Package realize hands a pattern set to a geometry kernel. Every shape maps
// to exactly one kernel call; elements the kernel rejects as degenerate
// (kernel.ErrDegenerate) are dropped and counted per layer rather than
// failing the whole set. Any other kernel error fails realization.
package realize

import (
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/chazu/morpho/pkg/kernel"
	"github.com/chazu/morpho/pkg/logging"
	"github.com/chazu/morpho/pkg/pattern"
)

// ErrUnknownShape is returned for a shape variant the realizer cannot map.
var ErrUnknownShape = errors.New("unknown shape variant")

// ErrNilKernel is returned when no kernel is supplied.
var ErrNilKernel = errors.New("realize: nil kernel")

// Options controls what Realize produces beyond curves and solids.
type Options struct {
	// JoinSolids unions the solids of each layer into LayerResult.Joined.
	JoinSolids bool
	// Mesh tessellates the joined solid, or every solid when JoinSolids is
	// off, into LayerResult.Meshes.
	Mesh bool
}

// Failure records one dropped element.
type Failure struct {
	Index int
	Kind  pattern.ShapeKind
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %d: %v", f.Kind, f.Index, f.Err)
}

// LayerResult is the realized form of one pattern layer.
type LayerResult struct {
	Name      string
	Generator string
	Curves    []*kernel.Curve
	Solids    []kernel.Solid
	Joined    kernel.Solid
	Meshes    []*kernel.Mesh
	Failures  []Failure
}

// Dropped returns the number of degenerate elements the kernel rejected.
func (l *LayerResult) Dropped() int { return len(l.Failures) }

// Result holds one LayerResult per input layer, in input order.
type Result struct {
	Layers []*LayerResult
}

// Dropped returns the total number of rejected elements.
func (r *Result) Dropped() int {
	return lo.SumBy(r.Layers, func(l *LayerResult) int { return l.Dropped() })
}

// Meshes returns every mesh across layers.
func (r *Result) Meshes() []*kernel.Mesh {
	return lo.FlatMap(r.Layers, func(l *LayerResult, _ int) []*kernel.Mesh { return l.Meshes })
}

// outcome is the tagged result of realizing one shape: exactly one of curve,
// solid, err or fatal is set.
type outcome struct {
	index int
	kind  pattern.ShapeKind
	curve *kernel.Curve
	solid kernel.Solid
	err   error
	fatal error
}

func (o outcome) ok() bool { return o.err == nil && o.fatal == nil }

// Realize walks the layers of s in order. It fails when k is nil, a shape
// has an unknown variant, the kernel returns an error other than
// kernel.ErrDegenerate, or joining or meshing fails. Degenerate elements are
// recorded as Failures.
func Realize(s *pattern.Set, k kernel.Kernel, opts Options) (*Result, error) {
	if k == nil {
		return nil, ErrNilKernel
	}
	res := &Result{}
	if s == nil {
		return res, nil
	}

	log := logging.Logger()
	for _, layer := range s.Layers {
		lr, err := realizeLayer(layer, k, opts)
		if err != nil {
			return nil, fmt.Errorf("realize: layer %q: %w", layer.Name, err)
		}
		log.Debug("realized layer",
			"layer", lr.Name,
			"curves", len(lr.Curves),
			"solids", len(lr.Solids),
			"dropped", lr.Dropped())
		if lr.Dropped() > 0 {
			log.Warn("dropped degenerate elements", "layer", lr.Name, "count", lr.Dropped())
		}
		res.Layers = append(res.Layers, lr)
	}
	return res, nil
}

func realizeLayer(layer *pattern.Layer, k kernel.Kernel, opts Options) (*LayerResult, error) {
	outcomes := lo.Map(layer.Shapes, func(sh pattern.Shape, i int) outcome {
		return realizeShape(k, sh, i)
	})
	if bad, found := lo.Find(outcomes, func(o outcome) bool { return o.fatal != nil }); found {
		return nil, fmt.Errorf("shape %d: %w", bad.index, bad.fatal)
	}

	lr := &LayerResult{
		Name:      layer.Name,
		Generator: layer.Generator,
		Curves: lo.FilterMap(outcomes, func(o outcome, _ int) (*kernel.Curve, bool) {
			return o.curve, o.ok() && o.curve != nil
		}),
		Solids: lo.FilterMap(outcomes, func(o outcome, _ int) (kernel.Solid, bool) {
			return o.solid, o.ok() && o.solid != nil
		}),
		Failures: lo.FilterMap(outcomes, func(o outcome, _ int) (Failure, bool) {
			return Failure{Index: o.index, Kind: o.kind, Err: o.err}, o.err != nil
		}),
	}

	if opts.JoinSolids && len(lr.Solids) > 0 {
		joined, err := k.Join(lr.Solids)
		if err != nil {
			return nil, fmt.Errorf("join: %w", err)
		}
		lr.Joined = joined
	}

	if opts.Mesh {
		targets := lr.Solids
		if lr.Joined != nil {
			targets = []kernel.Solid{lr.Joined}
		}
		for i, solid := range targets {
			m, err := k.ToMesh(solid)
			if err != nil {
				return nil, fmt.Errorf("mesh %d: %w", i, err)
			}
			m.Layer = layer.Name
			lr.Meshes = append(lr.Meshes, m)
		}
	}
	return lr, nil
}

// realizeShape issues the single kernel call for sh.
func realizeShape(k kernel.Kernel, sh pattern.Shape, i int) outcome {
	o := outcome{index: i}
	if sh == nil {
		o.fatal = fmt.Errorf("%w: nil shape", ErrUnknownShape)
		return o
	}
	o.kind = sh.Kind()

	switch v := sh.(type) {
	case pattern.Polyline:
		o.curve, o.err = k.Polyline(v.Points, v.Closed)
	case pattern.Segment:
		o.curve, o.err = k.Line(v.A, v.B)
	case pattern.Arc:
		o.curve, o.err = k.Arc(v.Start, v.Mid, v.End)
	case pattern.Triangle:
		o.solid, o.err = k.Patch(v.A, v.B, v.C)
	case pattern.Tetrahedron:
		o.solid, o.err = k.Tetrahedron(v.V)
	case pattern.Cube:
		o.solid, o.err = k.Box(v.Center, v.Size)
	default:
		o.fatal = fmt.Errorf("%w: %T", ErrUnknownShape, sh)
	}
	// Only degenerate input is dropped; any other kernel error aborts.
	if o.err != nil && !errors.Is(o.err, kernel.ErrDegenerate) {
		o.fatal, o.err = o.err, nil
	}
	return o
}
