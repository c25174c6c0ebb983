package slicer

import "sync"

// VoxelGrid holds per-voxel 1-based coordinate arrays for one volume
// shape, laid out like the volume data with the x axis varying fastest.
type VoxelGrid struct {
	Shape   [3]int
	X, Y, Z []float64
}

// coord returns the linear index of 0-based voxel (i, j, k).
func (g *VoxelGrid) index(i, j, k int) int {
	return i + g.Shape[0]*(j+g.Shape[1]*k)
}

// SampleGrid returns the voxel coordinate grids for the given spatial
// shape. The grid is memoized per sampler: repeated calls with the same
// shape reuse the previous arrays, and a call with a different shape
// discards and rebuilds them. The grid is a pure function of the shape,
// so discarding it is always safe.
func (s *Sampler) SampleGrid(shape [3]int) *VoxelGrid {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.grid != nil && s.grid.Shape == shape {
		return s.grid
	}

	nx, ny, nz := shape[0], shape[1], shape[2]
	n := nx * ny * nz
	g := &VoxelGrid{
		Shape: shape,
		X:     make([]float64, n),
		Y:     make([]float64, n),
		Z:     make([]float64, n),
	}

	idx := 0
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				g.X[idx] = float64(i + 1)
				g.Y[idx] = float64(j + 1)
				g.Z[idx] = float64(k + 1)
				idx++
			}
		}
	}

	s.grid = g
	return g
}

// Sampler cuts oblique slices through volumetric data. It carries the
// memoized voxel coordinate grid as its only cross-call state; a zero
// Sampler is ready to use, and a single Sampler is safe for concurrent
// use.
type Sampler struct {
	mu   sync.Mutex
	grid *VoxelGrid
}

// NewSampler returns a new slice sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}
