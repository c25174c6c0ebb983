package models

import (
	"fmt"
	"math"
)

// Volume represents an N-dimensional sampled dataset, N >= 3. The first
// three axes are spatial voxel axes; any trailing axes are channel axes
// (time, frequency, RGB) that are carried through resampling unchanged.
//
// Data is stored as a 1D array with the first axis varying fastest, so
// the linear index of voxel (x, y, z) in channel c is
// x + Dims[0]*(y + Dims[1]*(z + Dims[2]*c)).
type Volume struct {
	// Data is the sample values as a flat array
	Data []float64

	// Dims holds the extent of each axis; len(Dims) >= 3
	Dims []int
}

// NewVolume creates a volume from flat data and axis extents.
// It validates that the data length matches the product of the extents.
func NewVolume(data []float64, dims ...int) (*Volume, error) {
	if len(dims) < 3 {
		return nil, fmt.Errorf("volume requires at least 3 axes, got %d", len(dims))
	}

	n := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("axis extent must be positive, got %d", d)
		}
		n *= d
	}

	if len(data) != n {
		return nil, fmt.Errorf("data length %d does not match dimensions (need %d)", len(data), n)
	}

	return &Volume{Data: data, Dims: append([]int(nil), dims...)}, nil
}

// Shape returns the extents of the three spatial axes.
func (v *Volume) Shape() [3]int {
	return [3]int{v.Dims[0], v.Dims[1], v.Dims[2]}
}

// Channels returns the total number of trailing-axis channels (1 if the
// volume is purely spatial).
func (v *Volume) Channels() int {
	n := 1
	for _, d := range v.Dims[3:] {
		n *= d
	}
	return n
}

// At returns the sample at 0-based voxel (x, y, z) in channel c.
func (v *Volume) At(x, y, z, c int) float64 {
	nx, ny, nz := v.Dims[0], v.Dims[1], v.Dims[2]
	return v.Data[x+nx*(y+ny*(z+nz*c))]
}

// SameSpatialShape reports whether the other volume covers the same
// spatial grid (identical first-three-axis extents).
func (v *Volume) SameSpatialShape(o *Volume) bool {
	return v.Dims[0] == o.Dims[0] && v.Dims[1] == o.Dims[1] && v.Dims[2] == o.Dims[2]
}

// Center returns the geometric center of the volume in 1-based voxel
// coordinates, i.e. ((nx+1)/2, (ny+1)/2, (nz+1)/2).
func (v *Volume) Center() Vec3 {
	return Vec3{
		X: (float64(v.Dims[0]) + 1) / 2,
		Y: (float64(v.Dims[1]) + 1) / 2,
		Z: (float64(v.Dims[2]) + 1) / 2,
	}
}

// Vec3 represents a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the component-wise difference of two vectors.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns the vector multiplied by a scalar.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns the dot product of two vectors.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product of two vectors.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of the vector.
func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns the unit vector in the direction of a, or the zero
// vector if a has zero length.
func (a Vec3) Normalize() Vec3 {
	n := a.Norm()
	if n == 0 {
		return Vec3{}
	}
	return a.Scale(1 / n)
}
