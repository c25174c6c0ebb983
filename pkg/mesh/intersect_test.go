package mesh

import (
	"math"
	"testing"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// TestIntersectPlaneCube verifies intersecting a unit cube with a
// horizontal plane through its middle
func TestIntersectPlaneCube(t *testing.T) {
	cube := unitCube()

	segments, err := IntersectPlane(cube,
		models.Vec3{X: 0, Y: 0, Z: 0.5},
		models.Vec3{X: 1, Y: 0, Z: 0.5},
		models.Vec3{X: 0, Y: 1, Z: 0.5})
	if err != nil {
		t.Fatalf("IntersectPlane failed: %v", err)
	}

	// Each of the 8 side triangles crosses the plane once; the top and
	// bottom faces do not
	if len(segments) != 8 {
		t.Errorf("Expected 8 segments, got %d", len(segments))
	}

	for i, s := range segments {
		if math.Abs(s.A.Z-0.5) > 1e-12 || math.Abs(s.B.Z-0.5) > 1e-12 {
			t.Errorf("Segment %d not on the cutting plane: %v -> %v", i, s.A, s.B)
		}
		if s.A.Sub(s.B).Norm() == 0 {
			t.Errorf("Segment %d is degenerate", i)
		}
	}
}

// TestIntersectPlaneMiss verifies that a plane outside the surface
// produces no segments
func TestIntersectPlaneMiss(t *testing.T) {
	cube := unitCube()

	segments, err := IntersectPlane(cube,
		models.Vec3{X: 0, Y: 0, Z: 5},
		models.Vec3{X: 1, Y: 0, Z: 5},
		models.Vec3{X: 0, Y: 1, Z: 5})
	if err != nil {
		t.Fatalf("IntersectPlane failed: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("Expected no segments, got %d", len(segments))
	}
}

// TestIntersectPlaneCollinear verifies that collinear spanning points
// are rejected
func TestIntersectPlaneCollinear(t *testing.T) {
	cube := unitCube()

	_, err := IntersectPlane(cube,
		models.Vec3{},
		models.Vec3{X: 1},
		models.Vec3{X: 2})
	if err == nil {
		t.Error("Expected an error for collinear plane points")
	}
}

// TestIntersectPlaneBadFace verifies that out-of-range vertex indices
// are reported
func TestIntersectPlaneBadFace(t *testing.T) {
	broken := &models.TriMesh{
		Vertices: []models.Vec3{{}, {X: 1}, {Y: 1}},
		Faces:    [][3]int{{0, 1, 7}},
	}

	_, err := IntersectPlane(broken,
		models.Vec3{},
		models.Vec3{X: 1},
		models.Vec3{Y: 1})
	if err == nil {
		t.Error("Expected an error for an out-of-range vertex index")
	}
}

// unitCube builds a triangulated unit cube with 8 shared vertices and
// 12 faces
func unitCube() *models.TriMesh {
	vertices := []models.Vec3{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	faces := [][3]int{
		// bottom (z=0) and top (z=1)
		{0, 1, 2}, {0, 2, 3},
		{4, 6, 5}, {4, 7, 6},
		// sides
		{0, 4, 5}, {0, 5, 1},
		{1, 5, 6}, {1, 6, 2},
		{2, 6, 7}, {2, 7, 3},
		{3, 7, 4}, {3, 4, 0},
	}
	return &models.TriMesh{Vertices: vertices, Faces: faces}
}
