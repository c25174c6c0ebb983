package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transform is a 4x4 affine matrix mapping homogeneous 1-based voxel
// coordinates to world coordinates.
type Transform struct {
	m *mat.Dense
}

// Identity returns the identity transform.
func Identity() *Transform {
	t := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		t.Set(i, i, 1)
	}
	return &Transform{m: t}
}

// NewTransform creates a transform from 16 row-major values.
func NewTransform(values []float64) (*Transform, error) {
	if len(values) != 16 {
		return nil, fmt.Errorf("transform requires 16 values, got %d", len(values))
	}
	return &Transform{m: mat.NewDense(4, 4, append([]float64(nil), values...))}, nil
}

// Matrix returns the underlying 4x4 matrix.
func (t *Transform) Matrix() *mat.Dense {
	return t.m
}

// IsIdentity reports whether the transform is exactly the identity matrix.
func (t *Transform) IsIdentity() bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if t.m.At(i, j) != want {
				return false
			}
		}
	}
	return true
}

// Inverse returns the inverse transform, or an error if the matrix is
// singular.
func (t *Transform) Inverse() (*Transform, error) {
	var inv mat.Dense
	if err := inv.Inverse(t.m); err != nil {
		return nil, fmt.Errorf("inverting transform: %w", err)
	}
	return &Transform{m: &inv}, nil
}

// Apply maps a 3D point through the affine transform.
func (t *Transform) Apply(p Vec3) Vec3 {
	return Vec3{
		X: t.m.At(0, 0)*p.X + t.m.At(0, 1)*p.Y + t.m.At(0, 2)*p.Z + t.m.At(0, 3),
		Y: t.m.At(1, 0)*p.X + t.m.At(1, 1)*p.Y + t.m.At(1, 2)*p.Z + t.m.At(1, 3),
		Z: t.m.At(2, 0)*p.X + t.m.At(2, 1)*p.Y + t.m.At(2, 2)*p.Z + t.m.At(2, 3),
	}
}

// TriMesh represents a triangulated surface with shared vertices.
type TriMesh struct {
	// Vertices holds the corner points in world coordinates
	Vertices []Vec3

	// Faces holds vertex indices for each triangle
	Faces [][3]int
}
