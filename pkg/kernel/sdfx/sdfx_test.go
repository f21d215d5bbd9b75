package sdfx

import (
	"errors"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/kernel"
)

// testKernel keeps marching cubes coarse so the suite stays fast.
func testKernel() *SdfxKernel {
	return New(WithMeshCells(40))
}

func checkMesh(t *testing.T, m *kernel.Mesh) {
	t.Helper()
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(m.Vertices) != len(m.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(m.Vertices), len(m.Normals))
	}
	if len(m.Indices) != m.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(m.Indices), m.TriangleCount()*3)
	}
}

func checkBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64, tol float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], wantMax[i])
		}
	}
}

func TestBox(t *testing.T) {
	k := testKernel()
	box, err := k.Box(geom.Pt(100, 200, 300), 10)
	if err != nil {
		t.Fatal(err)
	}
	checkBounds(t, box, [3]float64{95, 195, 295}, [3]float64{105, 205, 305}, 0.01)

	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	checkMesh(t, mesh)
	t.Logf("box triangle count: %d", mesh.TriangleCount())
}

func TestBoxDegenerate(t *testing.T) {
	k := testKernel()
	for _, size := range []float64{0, -1, 1e-12, math.Inf(1), math.NaN()} {
		if _, err := k.Box(geom.Origin, size); !errors.Is(err, kernel.ErrDegenerate) {
			t.Errorf("size %g: expected ErrDegenerate, got %v", size, err)
		}
	}
}

func TestPatchFlat(t *testing.T) {
	k := testKernel()
	p, err := k.Patch(geom.Pt(0, 0, 5), geom.Pt(10, 0, 5), geom.Pt(0, 10, 5))
	if err != nil {
		t.Fatal(err)
	}
	min, max := p.BoundingBox()
	if math.Abs(min[0]) > 0.01 || math.Abs(max[0]-10) > 0.01 || math.Abs(max[1]-10) > 0.01 {
		t.Errorf("unexpected XY extent %v..%v", min, max)
	}
	thick := max[2] - min[2]
	if thick <= 0 || thick > 1 {
		t.Errorf("slab thickness %f", thick)
	}
	if mid := (min[2] + max[2]) / 2; math.Abs(mid-5) > 0.01 {
		t.Errorf("slab centered at z=%f, want 5", mid)
	}
}

func TestPatchTilted(t *testing.T) {
	k := testKernel()
	a, b, c := geom.Pt(1, 2, 3), geom.Pt(4, -1, 7), geom.Pt(-2, 5, 0)
	p, err := k.Patch(a, b, c)
	if err != nil {
		t.Fatal(err)
	}
	min, max := p.BoundingBox()
	for _, v := range []geom.Point{a, b, c} {
		pt := [3]float64{v.X, v.Y, v.Z}
		for i := 0; i < 3; i++ {
			if pt[i] < min[i]-0.01 || pt[i] > max[i]+0.01 {
				t.Errorf("vertex %v outside bounds %v..%v", v, min, max)
			}
		}
	}
	// Every vertex lies on the slab's mid-plane.
	s, _ := unwrap(p)
	for _, v := range []geom.Point{a, b, c} {
		if d := s.Evaluate(vec(v)); d > 1e-6 {
			t.Errorf("vertex %v evaluates outside: %f", v, d)
		}
	}
	centroid, _ := geom.Centroid([]geom.Point{a, b, c})
	if d := s.Evaluate(vec(centroid)); d >= 0 {
		t.Errorf("centroid not inside patch: %f", d)
	}
}

func TestPatchCollinear(t *testing.T) {
	k := testKernel()
	_, err := k.Patch(geom.Pt(0, 0, 0), geom.Pt(1, 1, 1), geom.Pt(3, 3, 3))
	if !errors.Is(err, kernel.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}

func TestTetrahedron(t *testing.T) {
	k := testKernel()
	v := [4]geom.Point{
		geom.Pt(0, 0, 0), geom.Pt(10, 0, 0), geom.Pt(0, 10, 0), geom.Pt(0, 0, 10),
	}
	tet, err := k.Tetrahedron(v)
	if err != nil {
		t.Fatal(err)
	}
	checkBounds(t, tet, [3]float64{0, 0, 0}, [3]float64{10, 10, 10}, 1e-9)

	s, _ := unwrap(tet)
	if d := s.Evaluate(v3.Vec{X: 1, Y: 1, Z: 1}); math.Abs(d+1) > 1e-9 {
		t.Errorf("inside distance %f, want -1", d)
	}
	if d := s.Evaluate(v3.Vec{X: 10, Y: 10, Z: 10}); d <= 0 {
		t.Errorf("far corner should be outside, got %f", d)
	}

	mesh, err := k.ToMesh(tet)
	if err != nil {
		t.Fatal(err)
	}
	checkMesh(t, mesh)
}

func TestTetrahedronVertexOrder(t *testing.T) {
	k := testKernel()
	v := [4]geom.Point{
		geom.Pt(0, 0, 0), geom.Pt(0, 10, 0), geom.Pt(10, 0, 0), geom.Pt(0, 0, 10),
	}
	tet, err := k.Tetrahedron(v)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := unwrap(tet)
	if d := s.Evaluate(v3.Vec{X: 1, Y: 1, Z: 1}); d >= 0 {
		t.Errorf("mirrored winding flipped the inside: %f", d)
	}
}

func TestTetrahedronDegenerate(t *testing.T) {
	k := testKernel()
	flat := [4]geom.Point{
		geom.Pt(0, 0, 0), geom.Pt(1, 0, 0), geom.Pt(0, 1, 0), geom.Pt(1, 1, 0),
	}
	if _, err := k.Tetrahedron(flat); !errors.Is(err, kernel.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}

func TestSmallSolidsAreNotDegenerate(t *testing.T) {
	k := testKernel()
	const e = 1e-5
	if _, err := k.Patch(geom.Pt(0, 0, 0), geom.Pt(e, 0, 0), geom.Pt(0, e, 0)); err != nil {
		t.Errorf("small patch: %v", err)
	}
	if _, err := k.Tetrahedron([4]geom.Point{
		geom.Pt(0, 0, 0), geom.Pt(e, 0, 0), geom.Pt(0, e, 0), geom.Pt(0, 0, e),
	}); err != nil {
		t.Errorf("small tetrahedron: %v", err)
	}
	_, err := k.Patch(geom.Pt(0, 0, 0), geom.Pt(e, e, 0), geom.Pt(3*e, 3*e, 0))
	if !errors.Is(err, kernel.ErrDegenerate) {
		t.Errorf("small collinear patch: expected ErrDegenerate, got %v", err)
	}
}

func TestJoin(t *testing.T) {
	k := testKernel()
	a, _ := k.Box(geom.Pt(0, 0, 0), 2)
	b, _ := k.Box(geom.Pt(10, 0, 0), 2)
	u, err := k.Join([]kernel.Solid{a, b})
	if err != nil {
		t.Fatal(err)
	}
	checkBounds(t, u, [3]float64{-1, -1, -1}, [3]float64{11, 1, 1}, 0.01)

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	checkMesh(t, mesh)

	single, _ := k.Join([]kernel.Solid{a})
	if single != a {
		t.Error("single-solid join should return the solid itself")
	}
	if _, err := k.Join(nil); !errors.Is(err, kernel.ErrDegenerate) {
		t.Errorf("empty join: expected ErrDegenerate, got %v", err)
	}
}

type foreignSolid struct{}

func (foreignSolid) BoundingBox() (min, max [3]float64) { return }

func TestForeignSolid(t *testing.T) {
	k := testKernel()
	if _, err := k.ToMesh(foreignSolid{}); !errors.Is(err, errForeignSolid) {
		t.Errorf("expected errForeignSolid, got %v", err)
	}
	a, _ := k.Box(geom.Origin, 1)
	if _, err := k.Join([]kernel.Solid{a, foreignSolid{}}); !errors.Is(err, errForeignSolid) {
		t.Errorf("expected errForeignSolid, got %v", err)
	}
}

func TestCurves(t *testing.T) {
	k := New(WithArcSegments(8))
	arc, err := k.Arc(geom.Pt(1, 0, 0), geom.Pt(0, 1, 0), geom.Pt(-1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(arc.Points) != 9 {
		t.Errorf("expected 9 arc samples, got %d", len(arc.Points))
	}
	if _, err := k.Line(geom.Origin, geom.Origin); !errors.Is(err, kernel.ErrDegenerate) {
		t.Errorf("expected ErrDegenerate for zero-length line, got %v", err)
	}
	pl, err := k.Polyline([]geom.Point{geom.Origin, geom.Pt(1, 0, 0)}, false)
	if err != nil || pl.Length() != 1 {
		t.Errorf("Polyline = %v, %v", pl, err)
	}
}
