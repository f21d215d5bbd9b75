package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/morpho/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{Vertices: []float32{1, -2, 3, -4, 5, 0, 2, 2, 2}}
	min, max := m.Bounds()
	if min != [3]float32{-4, -2, 0} {
		t.Errorf("min = %v", min)
	}
	if max != [3]float32{2, 5, 3} {
		t.Errorf("max = %v", max)
	}
	min, max = (&Mesh{}).Bounds()
	if min != ([3]float32{}) || max != ([3]float32{}) {
		t.Errorf("empty mesh bounds = %v %v", min, max)
	}
}

// --- Curves ---

func TestLineCurve(t *testing.T) {
	c, err := LineCurve(geom.Pt(0, 0, 0), geom.Pt(3, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if c.Length() != 5 {
		t.Errorf("Length() = %f, want 5", c.Length())
	}
	_, err = LineCurve(geom.Pt(1, 1, 1), geom.Pt(1, 1, 1))
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
	var de *DegenerateError
	if !errors.As(err, &de) || de.Op != "line" {
		t.Errorf("expected *DegenerateError for line, got %v", err)
	}
}

func TestPolylineCurve(t *testing.T) {
	square := []geom.Point{geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(1, 1, 0), geom.Pt(0, 1, 0)}
	open, err := PolylineCurve(square, false)
	if err != nil {
		t.Fatal(err)
	}
	closed, _ := PolylineCurve(square, true)
	if open.Length() != 3 || closed.Length() != 4 {
		t.Errorf("lengths open=%f closed=%f", open.Length(), closed.Length())
	}
	square[0] = geom.Pt(9, 9, 9)
	if open.Points[0] != geom.Origin {
		t.Error("curve aliases the caller's slice")
	}

	tests := []struct {
		name string
		pts  []geom.Point
	}{
		{"empty", nil},
		{"single", []geom.Point{geom.Origin}},
		{"zero length", []geom.Point{geom.Origin, geom.Origin, geom.Origin}},
	}
	for _, tt := range tests {
		if _, err := PolylineCurve(tt.pts, false); !errors.Is(err, ErrDegenerate) {
			t.Errorf("%s: expected ErrDegenerate, got %v", tt.name, err)
		}
	}
}

func TestArcCurveSemicircle(t *testing.T) {
	start, mid, end := geom.Pt(1, 0, 2), geom.Pt(0, 1, 2), geom.Pt(-1, 0, 2)
	c, err := ArcCurve(start, mid, end, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Points) != 17 {
		t.Fatalf("expected 17 samples, got %d", len(c.Points))
	}
	if c.Points[0] != start || c.Points[16] != end {
		t.Error("arc does not start and end on its endpoints")
	}
	for i, p := range c.Points {
		if r := geom.Distance(geom.Pt(0, 0, 2), p); math.Abs(r-1) > 1e-9 {
			t.Errorf("sample %d at radius %f", i, r)
		}
	}
	// The arc passes through mid, not the lower half.
	if !c.Points[8].ApproxEqual(mid) {
		t.Errorf("middle sample %v, want %v", c.Points[8], mid)
	}
}

func TestArcCurveTakesMajorArc(t *testing.T) {
	// mid lies on the long way round from start to end.
	start, mid, end := geom.Pt(1, 0, 0), geom.Pt(-1, 0, 0), geom.Pt(0, 1, 0)
	c, err := ArcCurve(start, mid, end, 30)
	if err != nil {
		t.Fatal(err)
	}
	if l := c.Length(); l < math.Pi {
		t.Errorf("length %f is not the three-quarter arc", l)
	}
	found := false
	for _, p := range c.Points {
		if geom.Distance(p, mid) < 0.06 {
			found = true
		}
	}
	if !found {
		t.Error("arc does not pass near mid")
	}
}

func TestArcCurveCollinear(t *testing.T) {
	_, err := ArcCurve(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1), geom.Pt(2, 2, 2), 8)
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}
