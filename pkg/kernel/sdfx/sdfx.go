// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/morpho/pkg/geom"
	"github.com/chazu/morpho/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// defaultMeshCells controls marching cubes tessellation resolution.
	defaultMeshCells = 200
	// defaultPatchThickness is the slab thickness of a patch relative to its
	// longest edge.
	defaultPatchThickness = 0.02
)

// errForeignSolid is returned when a solid from another backend is passed in.
var errForeignSolid = errors.New("solid was not built by the sdfx kernel")

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx. It holds only settings and
// is safe for concurrent use.
type SdfxKernel struct {
	meshCells      int
	arcSegments    int
	patchThickness float64
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells sets the marching cubes resolution along the longest axis.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.meshCells = n
		}
	}
}

// WithArcSegments sets the number of chords an arc is sampled with.
func WithArcSegments(n int) Option {
	return func(k *SdfxKernel) {
		if n > 0 {
			k.arcSegments = n
		}
	}
}

// WithPatchThickness sets the patch slab thickness as a fraction of the
// patch's longest edge.
func WithPatchThickness(ratio float64) Option {
	return func(k *SdfxKernel) {
		if ratio > 0 {
			k.patchThickness = ratio
		}
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{
		meshCells:      defaultMeshCells,
		arcSegments:    kernel.DefaultArcSegments,
		patchThickness: defaultPatchThickness,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) (sdf.SDF3, error) {
	ss, ok := s.(*sdfxSolid)
	if !ok || ss == nil {
		return nil, errForeignSolid
	}
	return ss.s, nil
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func vec(p geom.Point) v3.Vec {
	return v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// ---------------------------------------------------------------------------
// Curves
// ---------------------------------------------------------------------------

// SDFs have no 1D elements, so curves stay sampled polylines.

// Line returns the segment from a to b.
func (k *SdfxKernel) Line(a, b geom.Point) (*kernel.Curve, error) {
	return kernel.LineCurve(a, b)
}

// Arc samples the circular arc through start, mid and end.
func (k *SdfxKernel) Arc(start, mid, end geom.Point) (*kernel.Curve, error) {
	return kernel.ArcCurve(start, mid, end, k.arcSegments)
}

// Polyline copies points into a curve.
func (k *SdfxKernel) Polyline(points []geom.Point, closed bool) (*kernel.Curve, error) {
	return kernel.PolylineCurve(points, closed)
}

// ---------------------------------------------------------------------------
// Solids
// ---------------------------------------------------------------------------

// Patch builds a thin triangular slab on the plane of a, b and c. The
// triangle is drawn as a 2D polygon in a local frame, extruded symmetrically
// and moved into place.
func (k *SdfxKernel) Patch(a, b, c geom.Point) (kernel.Solid, error) {
	if geom.Collinear(a, b, c) {
		return nil, kernel.Degenerate("patch", "vertices are collinear")
	}
	ab, ac := b.Sub(a), c.Sub(a)
	normal := ab.Cross(ac)

	u := ab.Scale(1 / ab.Length())
	n := normal.Scale(1 / normal.Length())
	v := n.Cross(u)

	tri, err := sdf.Polygon2D([]v2.Vec{
		{X: 0, Y: 0},
		{X: ab.Length(), Y: 0},
		{X: ac.Dot(u), Y: ac.Dot(v)},
	})
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}

	longest := math.Max(ab.Length(), math.Max(ac.Length(), geom.Distance(b, c)))
	slab := sdf.Extrude3D(tri, longest*k.patchThickness)
	return wrap(sdf.Transform3D(slab, frame(a, u, v, n))), nil
}

// frame returns the transform taking the local axes onto u, v and n with the
// local origin at origin. The rotation is decomposed into Z·Y·X Euler angles.
func frame(origin, u, v, n geom.Point) sdf.M44 {
	var ax, ay, az float64
	ay = math.Asin(geom.Clamp(-u.Z, -1, 1))
	if math.Abs(math.Cos(ay)) > geom.Epsilon {
		ax = math.Atan2(v.Z, n.Z)
		az = math.Atan2(u.Y, u.X)
	} else {
		ax = math.Atan2(v.X*math.Sin(ay), v.Y)
	}
	rot := sdf.RotateZ(az).Mul(sdf.RotateY(ay)).Mul(sdf.RotateX(ax))
	return sdf.Translate3d(vec(origin)).Mul(rot)
}

// Box creates an axis-aligned cube of edge size centered on center.
func (k *SdfxKernel) Box(center geom.Point, size float64) (kernel.Solid, error) {
	if !(size > geom.Epsilon) || math.IsInf(size, 1) {
		return nil, kernel.Degenerate("box", fmt.Sprintf("edge %g is not positive", size))
	}
	s, err := sdf.Box3D(v3.Vec{X: size, Y: size, Z: size}, 0)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Box3D: %w", err)
	}
	return wrap(sdf.Transform3D(s, sdf.Translate3d(vec(center)))), nil
}

// Tetrahedron creates the solid bounded by the four faces of v.
func (k *SdfxKernel) Tetrahedron(v [4]geom.Point) (kernel.Solid, error) {
	t, err := newTetra(v)
	if err != nil {
		return nil, err
	}
	return wrap(t), nil
}

// Join unions solids. A single solid is returned unchanged.
func (k *SdfxKernel) Join(solids []kernel.Solid) (kernel.Solid, error) {
	switch len(solids) {
	case 0:
		return nil, kernel.Degenerate("join", "no solids")
	case 1:
		return solids[0], nil
	}
	parts := make([]sdf.SDF3, len(solids))
	for i, s := range solids {
		p, err := unwrap(s)
		if err != nil {
			return nil, fmt.Errorf("join part %d: %w", i, err)
		}
		parts[i] = p
	}
	return wrap(sdf.Union3D(parts...)), nil
}

// ---------------------------------------------------------------------------
// Mesh output
// ---------------------------------------------------------------------------

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3, err := unwrap(s)
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
