package slicer

import (
	"errors"
	"math"
	"testing"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// TestPlaneBasisOrthonormal verifies that the resolved basis together
// with the orientation forms an orthonormal triad for a range of normals
func TestPlaneBasisOrthonormal(t *testing.T) {
	normals := []models.Vec3{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -2, Y: 3, Z: 0.5},
		{X: 0.1, Y: -0.2, Z: 5},
	}

	for _, n := range normals {
		g, err := ResolveGeometry(nil, nil, &n, UnitUnknown, 0, [3]int{8, 8, 8})
		if err != nil {
			t.Fatalf("ResolveGeometry(%v) failed: %v", n, err)
		}

		vectors := []models.Vec3{g.BasisX, g.BasisY, g.Orientation}
		for i, a := range vectors {
			if math.Abs(a.Norm()-1) > 1e-10 {
				t.Errorf("normal %v: basis vector %d has length %f, want 1", n, i, a.Norm())
			}
			for j, b := range vectors {
				if i == j {
					continue
				}
				if d := math.Abs(a.Dot(b)); d > 1e-10 {
					t.Errorf("normal %v: basis vectors %d and %d not orthogonal, dot=%g", n, i, j, d)
				}
			}
		}
	}
}

// TestResolveGeometryDefaults verifies that with an identity transform,
// no location, and a +z normal the plane passes through the projection
// of the volume center onto the z axis
func TestResolveGeometryDefaults(t *testing.T) {
	ori := models.Vec3{Z: 1}
	g, err := ResolveGeometry(nil, nil, &ori, UnitUnknown, 0, [3]int{10, 12, 14})
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}

	want := models.Vec3{Z: (14 + 1) / 2.0}
	if g.Location.Sub(want).Norm() > 1e-12 {
		t.Errorf("Expected location %v, got %v", want, g.Location)
	}

	if g.Unit != Millimeter {
		t.Errorf("Expected inferred unit mm, got %s", g.Unit)
	}
	if g.Resolution != 1 {
		t.Errorf("Expected default resolution 1, got %g", g.Resolution)
	}
}

// TestResolveGeometryDiscardsPerpendicularLocation verifies that only
// the orientation-parallel component of the requested location survives
func TestResolveGeometryDiscardsPerpendicularLocation(t *testing.T) {
	ori := models.Vec3{Z: 1}
	loc := models.Vec3{X: 17, Y: -4, Z: 6}

	g, err := ResolveGeometry(nil, &loc, &ori, UnitUnknown, 0, [3]int{8, 8, 8})
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}

	want := models.Vec3{Z: 6}
	if g.Location.Sub(want).Norm() > 1e-12 {
		t.Errorf("Expected projected location %v, got %v", want, g.Location)
	}
}

// TestResolveGeometryDegenerateOrientation verifies that a zero-length
// normal is rejected
func TestResolveGeometryDegenerateOrientation(t *testing.T) {
	ori := models.Vec3{}
	_, err := ResolveGeometry(nil, nil, &ori, UnitUnknown, 0, [3]int{8, 8, 8})
	if !errors.Is(err, ErrDegenerateOrientation) {
		t.Errorf("Expected ErrDegenerateOrientation, got %v", err)
	}
}

// TestResolveGeometrySingularTransform verifies that a non-invertible
// voxel-to-world transform is rejected
func TestResolveGeometrySingularTransform(t *testing.T) {
	// Rank-deficient affine: the z row is zero
	tr, err := models.NewTransform([]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	})
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}

	ori := models.Vec3{Z: 1}
	_, err = ResolveGeometry(tr, nil, &ori, UnitUnknown, 0, [3]int{8, 8, 8})
	if !errors.Is(err, ErrSingularTransform) {
		t.Errorf("Expected ErrSingularTransform, got %v", err)
	}
}

// TestPlaneCoordinateRoundTrip verifies that mapping plane coordinates
// to voxel space and back through the affine returns the original point
func TestPlaneCoordinateRoundTrip(t *testing.T) {
	tr, err := models.NewTransform([]float64{
		2, 0, 0, 5,
		0, 3, 0, -7,
		0, 0, 4, 9,
		0, 0, 0, 1,
	})
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}

	ori := models.Vec3{X: 1, Y: 2, Z: 3}
	loc := models.Vec3{X: 4, Y: 5, Z: 6}
	g, err := ResolveGeometry(tr, &loc, &ori, Millimeter, 1, [3]int{8, 8, 8})
	if err != nil {
		t.Fatalf("ResolveGeometry failed: %v", err)
	}

	points := [][2]float64{{0, 0}, {1.3, -2.7}, {-10.5, 4.25}}
	for _, p := range points {
		u, v := p[0], p[1]

		world := g.PlanePoint(u, v)
		voxel := g.VoxelPoint(u, v)

		// The voxel point mapped through the affine must land on the
		// same world point
		back := tr.Apply(voxel)
		if back.Sub(world).Norm() > 1e-9 {
			t.Errorf("Plane point (%g, %g): affine(voxel)=%v, want %v", u, v, back, world)
		}

		// Projecting the world point back into the plane recovers the
		// original coordinates
		u2, v2 := g.ProjectToPlane(world)
		if math.Abs(u2-u) > 1e-9 || math.Abs(v2-v) > 1e-9 {
			t.Errorf("Plane point (%g, %g) projected back to (%g, %g)", u, v, u2, v2)
		}
	}
}

// TestNeedsInterpolation verifies the fast-path predicate and that each
// of its conditions is checked independently
func TestNeedsInterpolation(t *testing.T) {
	shape := [3]int{8, 8, 8}
	identity := models.Identity()
	scaled, err := models.NewTransform([]float64{
		2, 0, 0, 0,
		0, 2, 0, 0,
		0, 0, 2, 0,
		0, 0, 0, 1,
	})
	if err != nil {
		t.Fatalf("NewTransform failed: %v", err)
	}

	axisZ := models.Vec3{Z: 1}
	oblique := models.Vec3{X: 1, Y: 1}
	intLoc := models.Vec3{Z: 3}
	fracLoc := models.Vec3{Z: 2.5}

	cases := []struct {
		name string
		tr   *models.Transform
		loc  models.Vec3
		ori  models.Vec3
		res  float64
		want bool
	}{
		{"axis aligned integral", identity, intLoc, axisZ, 1, false},
		{"non-identity transform", scaled, intLoc, axisZ, 1, true},
		{"fractional location", identity, fracLoc, axisZ, 1, true},
		{"oblique orientation", identity, intLoc, oblique, 1, true},
		{"fractional resolution", identity, intLoc, axisZ, 0.5, true},
	}

	for _, tc := range cases {
		g, err := ResolveGeometry(tc.tr, &tc.loc, &tc.ori, Millimeter, tc.res, shape)
		if err != nil {
			t.Fatalf("%s: ResolveGeometry failed: %v", tc.name, err)
		}
		if got := NeedsInterpolation(tc.tr, g); got != tc.want {
			t.Errorf("%s: NeedsInterpolation=%v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestInferUnit verifies unit guessing from the world-space extent
func TestInferUnit(t *testing.T) {
	shape := [3]int{181, 217, 181}

	if u := InferUnit(nil, shape); u != Millimeter {
		t.Errorf("Identity transform: expected mm, got %s", u)
	}

	cases := []struct {
		scale float64
		want  Unit
	}{
		{0.001, Meter},
		{0.1, Centimeter},
		{1, Millimeter},
	}
	for _, tc := range cases {
		tr, err := models.NewTransform([]float64{
			tc.scale, 0, 0, 3,
			0, tc.scale, 0, 0,
			0, 0, tc.scale, 0,
			0, 0, 0, 1,
		})
		if err != nil {
			t.Fatalf("NewTransform failed: %v", err)
		}
		if u := InferUnit(tr, shape); u != tc.want {
			t.Errorf("Scale %g: expected %s, got %s", tc.scale, tc.want, u)
		}
	}
}

// TestDefaultResolutionPerUnit verifies that the default resolution is
// 1 mm converted into the resolved unit
func TestDefaultResolutionPerUnit(t *testing.T) {
	ori := models.Vec3{Z: 1}
	cases := []struct {
		unit Unit
		want float64
	}{
		{Meter, 0.001},
		{Centimeter, 0.1},
		{Millimeter, 1},
	}
	for _, tc := range cases {
		g, err := ResolveGeometry(nil, nil, &ori, tc.unit, 0, [3]int{8, 8, 8})
		if err != nil {
			t.Fatalf("ResolveGeometry failed: %v", err)
		}
		if math.Abs(g.Resolution-tc.want) > 1e-15 {
			t.Errorf("Unit %s: expected resolution %g, got %g", tc.unit, tc.want, g.Resolution)
		}
	}
}
