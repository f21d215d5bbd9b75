package pattern

import (
	"fmt"

	"github.com/chazu/morpho/pkg/geom"
)

// Severity indicates whether a finding is fatal to realization or advisory.
type Severity int

const (
	SeverityError   Severity = iota // set is malformed
	SeverityWarning                 // element will likely be dropped by a backend
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes one inspection result.
type Finding struct {
	Layer    string
	Index    int // shape index within the layer, -1 for layer-level findings
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.Index < 0 {
		return fmt.Sprintf("[%s] layer %q: %s", f.Severity, f.Layer, f.Message)
	}
	return fmt.Sprintf("[%s] layer %q shape %d: %s", f.Severity, f.Layer, f.Index, f.Message)
}

// Inspect checks every shape in the set for degeneracy under geom.Epsilon,
// applied relative to the shape's own size.
// It never mutates the set. Degenerate shapes are warnings: a backend drops
// them and realization carries on. Non-finite coordinates are errors.
func Inspect(s *Set) []Finding {
	var out []Finding
	for _, l := range s.Layers {
		if len(l.Shapes) == 0 {
			out = append(out, Finding{Layer: l.Name, Index: -1, Message: "layer is empty", Severity: SeverityWarning})
			continue
		}
		for i, sh := range l.Shapes {
			if msg, sev, bad := inspectShape(sh); bad {
				out = append(out, Finding{Layer: l.Name, Index: i, Message: msg, Severity: sev})
			}
		}
	}
	return out
}

// Warnings filters findings down to the advisory ones.
func Warnings(fs []Finding) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

func inspectShape(sh Shape) (string, Severity, bool) {
	for _, p := range points(sh) {
		if !p.IsFinite() {
			return fmt.Sprintf("%s has non-finite coordinate %v", sh.Kind(), p), SeverityError, true
		}
	}

	switch v := sh.(type) {
	case Segment:
		if geom.Distance(v.A, v.B) <= geom.Epsilon {
			return "zero-length segment", SeverityWarning, true
		}
	case Polyline:
		if len(v.Points) < 2 {
			return fmt.Sprintf("polyline needs at least 2 points, has %d", len(v.Points)), SeverityWarning, true
		}
	case Arc:
		if geom.Collinear(v.Start, v.Mid, v.End) {
			return "arc points are collinear", SeverityWarning, true
		}
	case Triangle:
		if geom.Collinear(v.A, v.B, v.C) {
			return "triangle has zero area", SeverityWarning, true
		}
	case Tetrahedron:
		if geom.Coplanar(v.V[0], v.V[1], v.V[2], v.V[3]) {
			return "tetrahedron has zero volume", SeverityWarning, true
		}
	case Cube:
		if v.Size <= geom.Epsilon {
			return fmt.Sprintf("cube size %g is not positive", v.Size), SeverityWarning, true
		}
	}
	return "", 0, false
}

func points(sh Shape) []geom.Point {
	switch v := sh.(type) {
	case Polyline:
		return v.Points
	case Segment:
		return []geom.Point{v.A, v.B}
	case Arc:
		return []geom.Point{v.Start, v.Mid, v.End}
	case Triangle:
		return v.Vertices()
	case Tetrahedron:
		return v.V[:]
	case Cube:
		return []geom.Point{v.Center}
	}
	return nil
}
