// Package engine provides the Lisp evaluation engine for morpho scripts.
// It wraps zygomys in a sandboxed environment and produces a pattern.Set
// from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/morpho/pkg/logging"
	"github.com/chazu/morpho/pkg/pattern"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error, a runtime error in user code, or a generator
// rejecting its arguments. Err holds the generator's error when there is
// one, so callers can match it with errors.Is and errors.As.
type EvalError struct {
	Line    int
	Col     int
	Message string
	Err     error
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

func (e EvalError) Unwrap() error { return e.Err }

// EvalWarning represents a non-fatal finding about the generated pattern.
type EvalWarning struct {
	Layer   string
	Index   int
	Message string
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	Set      *pattern.Set
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for morpho evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate takes Lisp source code and produces a new pattern.Set.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns set + nil errors + nil error
//   - On parse/eval failure: returns nil set + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*pattern.Set, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	start := time.Now()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		s, evalErrs, err := e.evaluate(source)
		ch <- evalResult{set: s, errors: evalErrs, err: err}
	}()

	s, evalErrs, err := waitWithTimeout(ch, gen, &e.mu, &e.generation)
	logging.Logger().Debug("evaluated script",
		"generation", gen,
		"elapsed", time.Since(start),
		"errors", len(evalErrs),
		"fatal", err != nil)
	return s, evalErrs, err
}

// EvaluateFull evaluates source and, on success, inspects the resulting set
// and reports its findings as warnings. Fatal failures are returned as the
// error.
func (e *Engine) EvaluateFull(source string) (*EvalResult, error) {
	s, evalErrs, err := e.Evaluate(source)
	if err != nil {
		return nil, err
	}
	res := &EvalResult{Set: s, Errors: evalErrs}
	if s == nil {
		return res, nil
	}
	log := logging.Logger()
	for _, f := range pattern.Inspect(s) {
		log.Warn("inspection finding",
			"layer", f.Layer,
			"index", f.Index,
			"severity", f.Severity.String(),
			"message", f.Message)
		res.Warnings = append(res.Warnings, EvalWarning{
			Layer:   f.Layer,
			Index:   f.Index,
			Message: fmt.Sprintf("%s: %s", f.Severity, f.Message),
		})
	}
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*pattern.Set, []EvalError, error) {
	// Empty source is a valid program that produces an empty set.
	if strings.TrimSpace(source) == "" {
		return pattern.NewSet(), nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := newScriptState()
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err, nil), nil
	}

	if _, err := env.Run(); err != nil {
		return nil, parseZygomysError(err, st.lastErr), nil
	}

	return st.set, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
// cause is the error a builtin returned, if the failure came from one.
func parseZygomysError(err error, cause error) []EvalError {
	msg := err.Error()

	if cause != nil && !strings.Contains(msg, cause.Error()) {
		cause = nil
	}
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
				Err:     cause,
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{
		Message: strings.TrimSpace(msg),
		Err:     cause,
	}}
}
