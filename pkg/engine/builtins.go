package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/logging"
	"github.com/chazu/morpho/pkg/pattern"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms morpho Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: koch-snowflake -> koch_snowflake
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Point.
type sexpVec3 struct {
	p geom.Point
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.p.X, v.p.Y, v.p.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpLayerRef is returned by every generator builtin and names the layer
// it appended.
type sexpLayerRef struct {
	name      string
	generator string
	count     int
}

func (l *sexpLayerRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(layer %q :generator %s :shapes %d)", l.name, l.generator, l.count)
}
func (l *sexpLayerRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer. Floats are accepted only when integral.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) && math.Abs(v.Val) < math.MaxInt32 {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toBool extracts a boolean from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected boolean, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a point from a sexpVec3 or a list or array of three
// numbers.
func toPoint(s zygo.Sexp) (geom.Point, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.p, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 3 {
		return geom.Point{}, fmt.Errorf("expected vec3 or 3-element list, got %T (%s)", s, s.SexpString(nil))
	}
	var xyz [3]float64
	for i, it := range items {
		if xyz[i], err = toFloat64(it); err != nil {
			return geom.Point{}, err
		}
	}
	return geom.Pt(xyz[0], xyz[1], xyz[2]), nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Argument reader
// ---------------------------------------------------------------------------

// argReader reads keyword arguments for one builtin call. The first failure
// is kept and every later read is a no-op returning the default, so a
// builtin can read all of its arguments and check done() once.
type argReader struct {
	kw   map[string]zygo.Sexp
	used map[string]bool
	err  error
}

func newArgReader(args []zygo.Sexp) *argReader {
	pa := parseArgs(args)
	r := &argReader{kw: pa.kw, used: make(map[string]bool)}
	if len(pa.positional) > 0 {
		r.err = fmt.Errorf("unexpected positional argument %s, use :keyword value pairs",
			pa.positional[0].SexpString(nil))
	}
	return r
}

// lookup returns the raw value for key and marks it consumed.
func (r *argReader) lookup(key string) (zygo.Sexp, bool) {
	r.used[key] = true
	if r.err != nil {
		return nil, false
	}
	v, ok := r.kw[key]
	return v, ok
}

func (r *argReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", key, err)
	}
}

func (r *argReader) float(key string, def float64) float64 {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	f, err := toFloat64(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return f
}

func (r *argReader) int(key string, def int) int {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := toInt(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return n
}

// str reads a string or keyword value.
func (r *argReader) str(key string, def string) string {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	s, err := toKeywordString(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return s
}

func (r *argReader) boolean(key string, def bool) bool {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	b, err := toBool(v)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return b
}

// point reads a required point. A missing point is a validation error
// naming key.
func (r *argReader) point(key string) geom.Point {
	v, ok := r.lookup(key)
	if !ok {
		if r.err == nil {
			r.err = geom.Invalid(key, nil, "required")
		}
		return geom.Point{}
	}
	p, err := toPoint(v)
	if err != nil {
		r.fail(key, err)
	}
	return p
}

// points reads an optional list of points.
func (r *argReader) points(key string) []geom.Point {
	v, ok := r.lookup(key)
	if !ok {
		return nil
	}
	items, err := sexpListToSlice(v)
	if err != nil {
		r.fail(key, err)
		return nil
	}
	out := make([]geom.Point, len(items))
	for i, it := range items {
		if out[i], err = toPoint(it); err != nil {
			r.fail(key, fmt.Errorf("element %d: %w", i, err))
			return nil
		}
	}
	return out
}

// done reports the first read failure, or an error for any keyword the
// builtin never read.
func (r *argReader) done() error {
	if r.err != nil {
		return r.err
	}
	unknown := lo.Filter(lo.Keys(r.kw), func(k string, _ int) bool { return !r.used[k] })
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown argument :%s", unknown[0])
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// scriptState is the per-evaluation state shared by the builtins.
type scriptState struct {
	set     *pattern.Set
	counter map[string]int // layers emitted per generator, for default names
	lastErr error          // error returned by the most recent failing builtin
}

func newScriptState() *scriptState {
	return &scriptState{set: pattern.NewSet(), counter: make(map[string]int)}
}

// defaultName returns "<generator>-<n>" for the generator's n-th layer.
func (st *scriptState) defaultName(gen string) string {
	st.counter[gen]++
	return fmt.Sprintf("%s-%d", gen, st.counter[gen])
}

// builtinName converts a kebab-case builtin to the identifier zygomys sees
// after preprocessing.
func builtinName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// registerBuiltins installs all morpho builtins into a zygomys environment.
// Generator builtins append their layer to the state's set.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *scriptState) {

	// -----------------------------------------------------------------------
	// (vec3 x y z)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: expected 3 arguments, got %d", len(args))
		}
		var xyz [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: argument %d: %w", i+1, err)
			}
			xyz[i] = f
		}
		return &sexpVec3{p: geom.Pt(xyz[0], xyz[1], xyz[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (layer-count) and (shape-count "name")
	// -----------------------------------------------------------------------
	env.AddFunction("layer_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpInt{Val: int64(st.set.LayerCount())}, nil
	})
	env.AddFunction("shape_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape-count: expected 1 argument, got %d", len(args))
		}
		layer := ""
		if ref, ok := args[0].(*sexpLayerRef); ok {
			layer = ref.name
		} else {
			s, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("shape-count: %w", err)
			}
			layer = s
		}
		l := st.set.Lookup(layer)
		if l == nil {
			return zygo.SexpNull, fmt.Errorf("shape-count: no layer named %q", layer)
		}
		return &zygo.SexpInt{Val: int64(len(l.Shapes))}, nil
	})

	for _, g := range generators {
		env.AddFunction(builtinName(g.name), generatorBuiltin(g, st))
	}
}

// generatorBuiltin adapts a generator to a zygomys function. The optional
// :name keyword overrides the default layer name.
func generatorBuiltin(g generator, st *scriptState) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		r := newArgReader(args)
		layerName := r.str("name", "")

		shapes, err := g.build(r)
		if err == nil {
			if layerName == "" {
				layerName = st.defaultName(g.name)
			}
			err = st.set.Add(&pattern.Layer{Name: layerName, Generator: g.name, Shapes: shapes})
		}
		if err != nil {
			st.lastErr = err
			return zygo.SexpNull, fmt.Errorf("%s: %w", g.name, err)
		}

		logging.Logger().Debug("generated layer", "layer", layerName, "generator", g.name, "shapes", len(shapes))
		return &sexpLayerRef{name: layerName, generator: g.name, count: len(shapes)}, nil
	}
}
