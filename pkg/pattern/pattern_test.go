package pattern

import (
	"math"
	"testing"

	"github.com/chazu/morpho/pkg/geom"
)

func TestShapeKinds(t *testing.T) {
	tests := []struct {
		shape Shape
		kind  ShapeKind
		name  string
	}{
		{Polyline{}, KindPolyline, "polyline"},
		{Segment{}, KindSegment, "segment"},
		{Arc{}, KindArc, "arc"},
		{Triangle{}, KindTriangle, "triangle"},
		{Tetrahedron{}, KindTetrahedron, "tetrahedron"},
		{Cube{}, KindCube, "cube"},
	}
	for _, tt := range tests {
		if tt.shape.Kind() != tt.kind {
			t.Errorf("%T.Kind() = %v, want %v", tt.shape, tt.shape.Kind(), tt.kind)
		}
		if tt.kind.String() != tt.name {
			t.Errorf("%v.String() = %q, want %q", tt.kind, tt.kind.String(), tt.name)
		}
	}
	if ShapeKind(99).String() != "unknown" {
		t.Error("out-of-range kind should print as unknown")
	}
}

func TestCubeEdges(t *testing.T) {
	c := Cube{Center: geom.Pt(1, 2, 3), Size: 4}
	edges := c.Edges()
	if len(edges) != 12 {
		t.Fatalf("expected 12 edges, got %d", len(edges))
	}
	for i, e := range edges {
		if d := geom.Distance(e.A, e.B); math.Abs(d-4) > 1e-12 {
			t.Errorf("edge %d has length %f, want 4", i, d)
		}
	}
	// Bottom loop first, at z = 1.
	for i := 0; i < 4; i++ {
		if edges[i].A.Z != 1 || edges[i].B.Z != 1 {
			t.Errorf("edge %d should lie on the bottom face", i)
		}
	}
	// Verticals last.
	for i := 8; i < 12; i++ {
		if edges[i].A.Z != 1 || edges[i].B.Z != 5 {
			t.Errorf("edge %d should be vertical", i)
		}
	}
}

func TestSetAddLookup(t *testing.T) {
	s := NewSet()
	if err := s.Add(&Layer{Name: "a", Generator: "star-polygon"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(&Layer{Name: "b", Shapes: []Shape{Segment{}, Segment{}}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(&Layer{Name: "a"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := s.Add(&Layer{}); err == nil {
		t.Error("expected empty name error")
	}
	if s.LayerCount() != 2 {
		t.Errorf("LayerCount = %d, want 2", s.LayerCount())
	}
	if s.ShapeCount() != 2 {
		t.Errorf("ShapeCount = %d, want 2", s.ShapeCount())
	}
	if s.Lookup("b") == nil || s.Lookup("missing") != nil {
		t.Error("Lookup returned wrong result")
	}
	if s.Lookup("a").Generator != "star-polygon" {
		t.Error("Lookup returned the wrong layer")
	}
	if got := s.Lookup("b").Count(KindSegment); got != 2 {
		t.Errorf("Count(segment) = %d, want 2", got)
	}
}

func TestInspect(t *testing.T) {
	p := geom.Pt
	s := NewSet()
	_ = s.Add(&Layer{Name: "ok", Shapes: []Shape{
		Triangle{A: p(0, 0, 0), B: p(1, 0, 0), C: p(0, 1, 0)},
		Tetrahedron{V: [4]geom.Point{p(0, 0, 0), p(1, 0, 0), p(0, 1, 0), p(0, 0, 1)}},
		Cube{Center: p(0, 0, 0), Size: 1},
		Arc{Start: p(1, 0, 0), Mid: p(0, 1, 0), End: p(-1, 0, 0)},
	}})
	_ = s.Add(&Layer{Name: "bad", Shapes: []Shape{
		Triangle{A: p(0, 0, 0), B: p(1, 1, 0), C: p(2, 2, 0)},
		Segment{A: p(1, 1, 1), B: p(1, 1, 1)},
		Tetrahedron{V: [4]geom.Point{p(0, 0, 0), p(1, 0, 0), p(0, 1, 0), p(1, 1, 0)}},
		Polyline{Points: []geom.Point{p(math.NaN(), 0, 0), p(1, 0, 0)}},
	}})
	_ = s.Add(&Layer{Name: "empty"})

	findings := Inspect(s)
	if len(findings) != 5 {
		for _, f := range findings {
			t.Log(f.Error())
		}
		t.Fatalf("expected 5 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Layer == "ok" {
			t.Errorf("valid layer produced finding: %s", f.Error())
		}
	}
	if got := len(Warnings(findings)); got != 4 {
		t.Errorf("expected 4 warnings, got %d", got)
	}
	if findings[3].Severity != SeverityError {
		t.Errorf("non-finite coordinate should be an error, got %s", findings[3].Severity)
	}
}

func TestInspectSmallShapes(t *testing.T) {
	p := geom.Pt
	for _, k := range []float64{1e-5, 1e-3} {
		s := NewSet()
		_ = s.Add(&Layer{Name: "small", Shapes: []Shape{
			Triangle{A: p(0, 0, 0), B: p(k, 0, 0), C: p(k/2, k, 0)},
			Tetrahedron{V: [4]geom.Point{p(0, 0, 0), p(k, 0, 0), p(0, k, 0), p(0, 0, k)}},
			Arc{Start: p(k, 0, 0), Mid: p(0, k, 0), End: p(-k, 0, 0)},
		}})
		if fs := Inspect(s); len(fs) != 0 {
			t.Errorf("scale %g: expected no findings, got %v", k, fs)
		}
	}
}
