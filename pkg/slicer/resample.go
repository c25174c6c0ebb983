package slicer

import (
	"math"

	"github.com/egarza1996/fieldtrip/internal/models"
	"github.com/egarza1996/fieldtrip/pkg/interpolation"
)

// resampler evaluates a volume on the plane sample grid given by the
// in-plane coordinate vectors us and vs. Every resampler obeys the same
// contract: a sample whose voxel coordinate falls outside [1, extent] on
// any axis yields NaN, never an out-of-bounds read.
type resampler interface {
	resample(vol *models.Volume, us, vs []float64, g *Geometry) (*Plane, error)
}

// selectResampler picks the sampling strategy: general interpolation,
// or direct slab selection when the plane lies exactly on an integer
// axis-aligned voxel slab. Both strategies agree within floating
// tolerance whenever both are legal.
func (s *Sampler) selectResampler(tr *models.Transform, g *Geometry, shape [3]int, method interpolation.Method) resampler {
	if NeedsInterpolation(tr, g) {
		return &interpResampler{method: method}
	}
	return &slabResampler{grid: s.SampleGrid(shape)}
}

// interpResampler samples through the generic grid interpolator.
type interpResampler struct {
	method interpolation.Method
}

func (r *interpResampler) resample(vol *models.Volume, us, vs []float64, g *Geometry) (*Plane, error) {
	shape := vol.Shape()
	grid, err := interpolation.NewGrid3D(vol.Data, shape[0], shape[1], shape[2], vol.Channels())
	if err != nil {
		return nil, err
	}

	out := newPlane(len(us), len(vs), vol.Channels())
	for j, v := range vs {
		for i, u := range us {
			p := g.VoxelPoint(u, v)
			for c := 0; c < out.Channels; c++ {
				// Voxel coordinates are 1-based; the interpolator is 0-based.
				out.set(i, j, c, grid.At(p.X-1, p.Y-1, p.Z-1, c, r.method))
			}
		}
	}
	return out, nil
}

// slabResampler selects values by direct integer indexing through the
// memoized voxel coordinate grid, without interpolation.
type slabResampler struct {
	grid *VoxelGrid
}

func (r *slabResampler) resample(vol *models.Volume, us, vs []float64, g *Geometry) (*Plane, error) {
	shape := vol.Shape()
	out := newPlane(len(us), len(vs), vol.Channels())

	for j, v := range vs {
		for i, u := range us {
			p := g.VoxelPoint(u, v)
			ix := int(math.Round(p.X))
			iy := int(math.Round(p.Y))
			iz := int(math.Round(p.Z))

			if ix < 1 || ix > shape[0] || iy < 1 || iy > shape[1] || iz < 1 || iz > shape[2] {
				for c := 0; c < out.Channels; c++ {
					out.set(i, j, c, math.NaN())
				}
				continue
			}

			li := r.grid.index(ix-1, iy-1, iz-1)
			x := int(r.grid.X[li]) - 1
			y := int(r.grid.Y[li]) - 1
			z := int(r.grid.Z[li]) - 1
			for c := 0; c < out.Channels; c++ {
				out.set(i, j, c, vol.At(x, y, z, c))
			}
		}
	}
	return out, nil
}
