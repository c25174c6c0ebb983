package slicer

import "errors"

// Input-contract violations reported by the sampler. A plane that simply
// misses the volume is not an error; it produces an all-NaN result that
// reports Empty() true.
var (
	// ErrDegenerateOrientation indicates a zero-length plane normal.
	ErrDegenerateOrientation = errors.New("plane orientation has zero length")

	// ErrSingularTransform indicates the voxel-to-world transform cannot
	// be inverted.
	ErrSingularTransform = errors.New("voxel-to-world transform is singular")

	// ErrShapeMismatch indicates a mask or background volume whose shape
	// does not match the data volume.
	ErrShapeMismatch = errors.New("mask or background shape does not match data")

	// ErrSingleSliceVolume indicates a volume with a spatial axis of
	// extent 1; the sampler requires a true 3D volume.
	ErrSingleSliceVolume = errors.New("volume has a singleton spatial axis")
)
