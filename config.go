package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v2"

	"github.com/chazu/morpho/pkg/engine"
	"github.com/chazu/morpho/pkg/logging"
)

// JobFile is the top-level layout of a YAML job file.
type JobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// Job describes one generator call. Center, Size and Iterations cover the
// common seed arguments and are passed only when set, so an explicit zero
// reaches the generator's validation; anything else goes in Params, keyed by
// the generator's keyword names without the colon.
type Job struct {
	Name       string                 `yaml:"name"`
	Generator  string                 `yaml:"generator"`
	Center     []float64              `yaml:"center"`
	Size       *float64               `yaml:"size"`
	Iterations *int                   `yaml:"iterations"`
	Params     map[string]interface{} `yaml:"params"`
}

// LoadJobs reads and decodes a job file.
func LoadJobs(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	return ParseJobs(data)
}

// ParseJobs decodes a job file and checks every job names a known generator.
func ParseJobs(data []byte) (*JobFile, error) {
	var jf JobFile
	if err := yaml.UnmarshalStrict(data, &jf); err != nil {
		return nil, fmt.Errorf("parse job file: %w", err)
	}
	known := lo.SliceToMap(engine.Generators(), func(g string) (string, bool) { return g, true })
	for i, j := range jf.Jobs {
		if !known[j.Generator] {
			return nil, fmt.Errorf("job %d (%s): unknown generator %q", i, j.Name, j.Generator)
		}
		if j.Center != nil && len(j.Center) != 3 {
			return nil, fmt.Errorf("job %d (%s): center needs 3 coordinates, got %d", i, j.Name, len(j.Center))
		}
	}
	return &jf, nil
}

// Script renders the job file as one morpho script, one call per job, so
// jobs go through the same engine as hand-written scripts.
func (jf *JobFile) Script() (string, error) {
	var b strings.Builder
	for i, j := range jf.Jobs {
		call, err := j.call()
		if err != nil {
			return "", fmt.Errorf("job %d (%s): %w", i, j.Name, err)
		}
		b.WriteString(call)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Run evaluates the job file with app, realizing the layers when doRealize
// is set.
func (jf *JobFile) Run(app *App, doRealize bool) (EvalResult, error) {
	script, err := jf.Script()
	if err != nil {
		return EvalResult{}, err
	}

	log := logging.Logger()
	log.Info("jobs started", "jobs", len(jf.Jobs), "realize", doRealize)
	start := time.Now()
	var result EvalResult
	if doRealize {
		result = app.Realize(script)
	} else {
		result = app.Evaluate(script)
	}
	log.Info("jobs finished",
		"jobs", len(jf.Jobs),
		"layers", len(result.Layers),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"elapsed", time.Since(start))
	return result, nil
}

func (j Job) call() (string, error) {
	var b strings.Builder
	b.WriteString("(" + j.Generator)
	if j.Name != "" {
		b.WriteString(" :name " + strconv.Quote(j.Name))
	}
	if j.Center != nil {
		fmt.Fprintf(&b, " :%s (vec3 %s %s %s)", centerKey(j.Generator),
			number(j.Center[0]), number(j.Center[1]), number(j.Center[2]))
	}
	if j.Size != nil {
		b.WriteString(" :size " + number(*j.Size))
	}
	if j.Iterations != nil {
		b.WriteString(" :iterations " + strconv.Itoa(*j.Iterations))
	}

	keys := lo.Keys(j.Params)
	sort.Strings(keys)
	for _, k := range keys {
		v, err := literal(j.Params[k])
		if err != nil {
			return "", fmt.Errorf("param %s: %w", k, err)
		}
		b.WriteString(" :" + k + " " + v)
	}
	b.WriteString(")")
	return b.String(), nil
}

// centerKey names the anchor argument of a generator.
func centerKey(generator string) string {
	switch generator {
	case "star-grid", "girih-grid":
		return "origin"
	case "koch-curve":
		return "start"
	}
	return "center"
}

// number formats f in plain decimal; the script reader has no exponent
// notation.
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// literal renders a decoded YAML value as a morpho literal.
func literal(v interface{}) (string, error) {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x), nil
	case float64:
		return number(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return strconv.Quote(x), nil
	case []interface{}:
		if lo.EveryBy(x, func(e interface{}) bool { _, ok := e.([]interface{}); return ok }) && len(x) > 0 {
			parts := make([]string, len(x))
			for i, e := range x {
				s, err := literal(e)
				if err != nil {
					return "", fmt.Errorf("element %d: %w", i, err)
				}
				parts[i] = s
			}
			return "(list " + strings.Join(parts, " ") + ")", nil
		}
		if len(x) != 3 {
			return "", fmt.Errorf("lists must be 3 coordinates, got %d", len(x))
		}
		parts := make([]string, 3)
		for i, e := range x {
			s, err := literal(e)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "(vec3 " + strings.Join(parts, " ") + ")", nil
	}
	return "", fmt.Errorf("unsupported value %v (%T)", v, v)
}
