// Command morpho evaluates pattern scripts or YAML job files and reports the
// generated layers, optionally realizing them into meshes with the sdfx
// kernel.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/chazu/morpho/pkg/kernel/sdfx"
	"github.com/chazu/morpho/pkg/logging"
)

func main() {
	var (
		scriptPath = flag.String("script", "", "morpho script to evaluate")
		jobPath    = flag.String("job", "", "YAML job file to evaluate")
		doRealize  = flag.Bool("realize", false, "realize layers into meshes with the sdfx kernel")
		meshCells  = flag.Int("cells", 100, "marching cubes resolution when realizing")
		jsonOut    = flag.String("json", "", "write the result as JSON to this file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logging.SetLogger(logger)

	app := NewApp(sdfx.WithMeshCells(*meshCells))
	result, err := run(app, *scriptPath, *jobPath, *doRealize)
	if err != nil {
		slog.Error("load input", "err", err)
		os.Exit(2)
	}

	report(os.Stdout, result)
	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, result); err != nil {
			slog.Error("write json", "err", err)
			os.Exit(1)
		}
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// run evaluates exactly one of the two inputs with app.
func run(app *App, scriptPath, jobPath string, doRealize bool) (EvalResult, error) {
	switch {
	case scriptPath != "" && jobPath != "":
		return EvalResult{}, fmt.Errorf("-script and -job are mutually exclusive")
	case scriptPath != "":
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return EvalResult{}, err
		}
		if doRealize {
			return app.Realize(string(data)), nil
		}
		return app.Evaluate(string(data)), nil
	case jobPath != "":
		jf, err := LoadJobs(jobPath)
		if err != nil {
			return EvalResult{}, err
		}
		return jf.Run(app, doRealize)
	}
	return EvalResult{}, fmt.Errorf("one of -script or -job is required")
}

// report prints a human-readable summary of result.
func report(w io.Writer, result EvalResult) {
	for _, e := range result.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	for _, wn := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", wn.Message)
	}

	total := 0
	for _, l := range result.Layers {
		n := 0
		for _, c := range l.Shapes {
			n += c
		}
		total += n
		line := fmt.Sprintf("%-24s %-22s %s shapes", l.Name, l.Generator, humanize.Comma(int64(n)))
		if l.Dropped > 0 {
			line += fmt.Sprintf(" (%s dropped)", humanize.Comma(int64(l.Dropped)))
		}
		fmt.Fprintln(w, line)
	}
	if len(result.Layers) > 0 {
		fmt.Fprintf(w, "%d layers, %s shapes\n", len(result.Layers), humanize.Comma(int64(total)))
	}

	triangles := 0
	for _, m := range result.Meshes {
		triangles += len(m.Indices) / 3
	}
	if len(result.Meshes) > 0 {
		fmt.Fprintf(w, "%d meshes, %s triangles\n", len(result.Meshes), humanize.Comma(int64(triangles)))
	}
}

func writeJSON(path string, result EvalResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	slog.Info("wrote result", "path", path, "size", humanize.Bytes(uint64(len(data))))
	return nil
}
