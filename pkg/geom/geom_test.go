package geom

import (
	"errors"
	"math"
	"testing"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPointAtAngle(t *testing.T) {
	c := Pt(1, 2, 3)

	p := PointAtAngle(c, 0, 5)
	if !p.ApproxEqual(Pt(6, 2, 3)) {
		t.Errorf("angle 0: got %v, want (6, 2, 3)", p)
	}

	p = PointAtAngle(c, math.Pi/2, 5)
	if !p.ApproxEqual(Pt(1, 7, 3)) {
		t.Errorf("angle π/2: got %v, want (1, 7, 3)", p)
	}
	if p.Z != c.Z {
		t.Errorf("z must stay in the center's plane, got %f", p.Z)
	}
}

func TestLerp(t *testing.T) {
	a := Pt(0, 0, 0)
	b := Pt(10, 20, 30)

	tests := []struct {
		name string
		t    float64
		want Point
	}{
		{"start", 0, a},
		{"end", 1, b},
		{"third", 1.0 / 3, Pt(10.0/3, 20.0/3, 10)},
		{"extrapolate forward", 2, Pt(20, 40, 60)},
		{"extrapolate backward", -1, Pt(-10, -20, -30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lerp(a, b, tt.t)
			if !got.ApproxEqual(tt.want) {
				t.Errorf("Lerp(t=%f) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Pt(-2, 4, 0), Pt(2, 0, 8))
	if got != Pt(0, 2, 4) {
		t.Errorf("Midpoint = %v, want (0, 2, 4)", got)
	}
}

func TestCentroid(t *testing.T) {
	got, err := Centroid([]Point{Pt(0, 0, 0), Pt(3, 0, 0), Pt(0, 3, 0), Pt(3, 3, 4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ApproxEqual(Pt(1.5, 1.5, 1)) {
		t.Errorf("Centroid = %v, want (1.5, 1.5, 1)", got)
	}
}

func TestCentroidEmpty(t *testing.T) {
	_, err := Centroid(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestRegularPolygon(t *testing.T) {
	c := Pt(5, -5, 2)
	pts := RegularPolygon(c, 10, 6, 0)
	if len(pts) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(pts))
	}
	for i, p := range pts {
		if d := Distance(c, p); !near(d, 10) {
			t.Errorf("vertex %d at distance %f, want 10", i, d)
		}
		if p.Z != c.Z {
			t.Errorf("vertex %d left the center plane: z=%f", i, p.Z)
		}
	}
	// First vertex points along -Y.
	if !pts[0].ApproxEqual(Pt(5, -15, 2)) {
		t.Errorf("first vertex = %v, want (5, -15, 2)", pts[0])
	}
	// Increasing angle: counter-clockwise.
	if SignedArea(pts) <= 0 {
		t.Errorf("expected counter-clockwise order, signed area %f", SignedArea(pts))
	}
}

func TestRegularPolygonRotation(t *testing.T) {
	pts := RegularPolygon(Origin, 1, 4, math.Pi/2)
	if !pts[0].ApproxEqual(Pt(1, 0, 0)) {
		t.Errorf("rotated first vertex = %v, want (1, 0, 0)", pts[0])
	}
}

func TestRegularPolygonSingleSide(t *testing.T) {
	if got := RegularPolygon(Origin, 1, 1, 0); len(got) != 1 {
		t.Errorf("sides=1: expected 1 vertex, got %d", len(got))
	}
	if got := RegularPolygon(Origin, 1, 0, 0); got != nil {
		t.Errorf("sides=0: expected nil, got %v", got)
	}
}

func TestEquilateralTriangleEdgeLength(t *testing.T) {
	tri := EquilateralTriangle(Pt(3, 4, 0), 12)
	if len(tri) != 3 {
		t.Fatalf("expected 3 vertices, got %d", len(tri))
	}
	for i := range tri {
		d := Distance(tri[i], tri[(i+1)%3])
		if !near(d, 12) {
			t.Errorf("edge %d length %f, want 12", i, d)
		}
	}
	c, _ := Centroid(tri)
	if !c.ApproxEqual(Pt(3, 4, 0)) {
		t.Errorf("centroid %v, want (3, 4, 0)", c)
	}
}

func TestCollinear(t *testing.T) {
	if !Collinear(Pt(0, 0, 0), Pt(1, 1, 1), Pt(2, 2, 2)) {
		t.Error("points on a diagonal should be collinear")
	}
	if !Collinear(Pt(1, 1, 0), Pt(1, 1, 0), Pt(5, 2, 0)) {
		t.Error("coincident points should count as collinear")
	}
	if Collinear(Pt(0, 0, 0), Pt(1, 0, 0), Pt(0, 1, 0)) {
		t.Error("right triangle corners are not collinear")
	}
}

func TestDegeneracyIsScaleRelative(t *testing.T) {
	tests := []struct {
		scale float64
	}{{1e-6}, {1e-5}, {1e-3}, {1}, {1e4}}
	for _, tt := range tests {
		k := tt.scale
		if Collinear(Pt(0, 0, 0), Pt(k, 0, 0), Pt(0, k, 0)) {
			t.Errorf("scale %g: right triangle reported collinear", k)
		}
		if !Collinear(Pt(0, 0, 0), Pt(k, k, 0), Pt(2*k, 2*k, 0)) {
			t.Errorf("scale %g: diagonal points not collinear", k)
		}
		if Coplanar(Pt(0, 0, 0), Pt(k, 0, 0), Pt(0, k, 0), Pt(0, 0, k)) {
			t.Errorf("scale %g: corner tetrahedron reported flat", k)
		}
		if !Coplanar(Pt(0, 0, 0), Pt(k, 0, 0), Pt(0, k, 0), Pt(k, k, 0)) {
			t.Errorf("scale %g: square corners not coplanar", k)
		}
	}
	if !Coplanar(Pt(1, 1, 1), Pt(1, 1, 1), Pt(2, 0, 0), Pt(0, 3, 0)) {
		t.Error("coincident points should count as coplanar")
	}
}

func TestRotateAndScaleAbout(t *testing.T) {
	c := Pt(1, 1, 7)
	got := RotateAbout(Pt(2, 1, 7), c, math.Pi/2)
	if !got.ApproxEqual(Pt(1, 2, 7)) {
		t.Errorf("RotateAbout = %v, want (1, 2, 7)", got)
	}
	got = ScaleAbout(Pt(3, 1, 9), c, 0.5)
	if !got.ApproxEqual(Pt(2, 1, 8)) {
		t.Errorf("ScaleAbout = %v, want (2, 1, 8)", got)
	}
}

func TestScalarHelpers(t *testing.T) {
	if !near(DegreesToRadians(180), math.Pi) {
		t.Error("DegreesToRadians(180) != π")
	}
	if !near(RadiansToDegrees(math.Pi/2), 90) {
		t.Error("RadiansToDegrees(π/2) != 90")
	}
	if got := MapValue(5, 0, 10, 100, 200); !near(got, 150) {
		t.Errorf("MapValue = %f, want 150", got)
	}
	if got := Clamp(12, 0, 10); got != 10 {
		t.Errorf("Clamp = %f, want 10", got)
	}
	if !near(GoldenRatio(), (1+math.Sqrt(5))/2) {
		t.Error("GoldenRatio mismatch")
	}
}

func TestFibonacci(t *testing.T) {
	want := []int{0, 1, 1, 2, 3, 5, 8, 13}
	got := Fibonacci(8)
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fibonacci[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if Fibonacci(0) != nil {
		t.Error("Fibonacci(0) should be nil")
	}
	if got := Fibonacci(1); len(got) != 1 || got[0] != 0 {
		t.Errorf("Fibonacci(1) = %v, want [0]", got)
	}
}

func TestValidationError(t *testing.T) {
	err := CheckRange("iterations", 5, 0, 4)
	if err == nil {
		t.Fatal("expected error for iterations above cap")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Param != "iterations" {
		t.Errorf("Param = %q, want iterations", ve.Param)
	}

	if err := CheckPositive("size", math.NaN()); err == nil {
		t.Error("NaN size should be rejected")
	}
	if err := CheckPositive("size", 0); err == nil {
		t.Error("zero size should be rejected")
	}
	if err := CheckPoint("center", Pt(math.Inf(1), 0, 0)); err == nil {
		t.Error("infinite center should be rejected")
	}
	if err := CheckOpenUnit("innerRatio", 1); err == nil {
		t.Error("innerRatio 1 should be rejected")
	}
	if err := FirstError(nil, CheckMin("points", 2, 3), CheckMin("x", 0, 1)); err == nil || err.(*ValidationError).Param != "points" {
		t.Errorf("FirstError should return the first failure, got %v", err)
	}
}
