package main

import (
	"fmt"

	"github.com/chazu/morpho/pkg/engine"
	"github.com/chazu/morpho/pkg/kernel"
	"github.com/chazu/morpho/pkg/kernel/sdfx"
	"github.com/chazu/morpho/pkg/logging"
	"github.com/chazu/morpho/pkg/pattern"
	"github.com/chazu/morpho/pkg/realize"
)

// colorPalette is a default palette used to assign distinct colors to layers.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App ties the script engine to a geometry kernel.
type App struct {
	engine  *engine.Engine
	kernel  kernel.Kernel
	options realize.Options
}

// MeshData is the JSON-serializable mesh format emitted by the CLI.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Layer    string    `json:"layer"`
	Color    string    `json:"color"`
}

// LayerSummary describes one generated layer.
type LayerSummary struct {
	Name      string         `json:"name"`
	Generator string         `json:"generator"`
	Shapes    map[string]int `json:"shapes"` // count per shape kind
	Dropped   int            `json:"dropped,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Set      *pattern.Set    `json:"-"`
	Layers   []LayerSummary  `json:"layers"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel. Realization
// meshes every layer's joined solid.
func NewApp(opts ...sdfx.Option) *App {
	return &App{
		engine:  engine.NewEngine(),
		kernel:  sdfx.New(opts...),
		options: realize.Options{JoinSolids: true, Mesh: true},
	}
}

// Evaluate runs source through the engine and summarizes the resulting
// layers. Nothing is handed to the kernel.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Layers:   []LayerSummary{},
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a pattern set.
	res, err := a.engine.EvaluateFull(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		logging.Logger().Error("evaluate failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors and warnings.
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	for _, w := range res.Warnings {
		msg := fmt.Sprintf("layer %q: %s", w.Layer, w.Message)
		if w.Index >= 0 {
			msg = fmt.Sprintf("layer %q shape %d: %s", w.Layer, w.Index, w.Message)
		}
		result.Warnings = append(result.Warnings, EvalErrorData{Message: msg})
	}

	result.Set = res.Set
	for _, l := range res.Set.Layers {
		result.Layers = append(result.Layers, summarize(l))
	}
	return result
}

// Realize evaluates source and hands the set to the kernel, returning one
// mesh per layer that produced solids.
func (a *App) Realize(source string) EvalResult {
	result := a.Evaluate(source)
	if len(result.Errors) > 0 || result.Set == nil {
		return result
	}

	// Step 3: Realize the set into kernel geometry.
	realized, err := realize.Realize(result.Set, a.kernel, a.options)
	if err != nil {
		logging.Logger().Error("realize failed", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "realization failed: " + err.Error(),
		})
		return result
	}
	for i, lr := range realized.Layers {
		result.Layers[i].Dropped = lr.Dropped()
	}

	// Step 4: Convert kernel meshes to the MeshData format.
	for i, m := range realized.Meshes() {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Layer:    m.Layer,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

func summarize(l *pattern.Layer) LayerSummary {
	counts := make(map[string]int)
	for _, sh := range l.Shapes {
		counts[sh.Kind().String()]++
	}
	return LayerSummary{Name: l.Name, Generator: l.Generator, Shapes: counts}
}
