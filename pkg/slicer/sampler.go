// Package slicer cuts a single oblique slice through a 3D (or higher
// dimensional) sampled volume. Given a voxel-to-world affine and a
// cutting plane described by a location and a unit normal, it derives an
// in-plane sampling grid, resamples the volume (and optional mask and
// background volumes) onto it, trims empty margins, and produces the
// world-space cell-edge grid a renderer needs to draw the slice as a
// quad mesh.
package slicer

import (
	"fmt"

	"github.com/egarza1996/fieldtrip/internal/models"
	"github.com/egarza1996/fieldtrip/pkg/interpolation"
)

// Input couples a volume with its voxel-to-world transform and known
// unit, resolved once at the entry point. A nil Transform means identity
// and UnitUnknown means the unit is inferred from the volume extent.
type Input struct {
	Volume    *models.Volume
	Transform *models.Transform
	Unit      Unit
}

// Options selects the cutting plane and resampling behavior. Zero values
// select the documented defaults.
type Options struct {
	// Location is a world-space point; only its component along
	// Orientation is used (the plane passes through the projection of
	// the point onto the normal axis). Nil defaults to the volume center
	// for identity transforms and the origin otherwise.
	Location *models.Vec3

	// Orientation is the plane normal; nil defaults to +z.
	Orientation *models.Vec3

	// Resolution is the in-plane sample spacing in the resolved unit;
	// zero defaults to 1 millimeter converted into that unit.
	Resolution float64

	// Method is the interpolation method; the zero value is nearest.
	Method interpolation.Method

	// Mask is an optional opacity volume on the same spatial grid.
	Mask *models.Volume

	// Background is an optional underlay volume on the same spatial
	// grid. It may carry a trailing channel axis of extent 3 (RGB) even
	// when the data volume has none.
	Background *models.Volume
}

// Result is the sampled slice. When the plane misses the volume entirely
// the result is all-NaN and Empty reports true; that outcome is expected
// and not an error.
type Result struct {
	// Values is the resampled data plane, trimmed of all-NaN borders
	Values *Plane

	// Mask and Background are the corresponding resampled side planes,
	// nil when not requested
	Mask       *Plane
	Background *Plane

	// PlaneX and PlaneY are the trimmed sample-center coordinates in
	// plane space
	PlaneX, PlaneY []float64

	// EdgeX and EdgeY are the cell-edge coordinates in plane space, one
	// longer than the center vectors on each axis
	EdgeX, EdgeY []float64

	// Corners holds the world-space positions of the cell corners,
	// len(EdgeX)*len(EdgeY) with the first axis varying fastest
	Corners []models.Vec3

	// Geometry is the resolved plane geometry
	Geometry *Geometry
}

// Empty reports whether the plane missed the volume entirely.
func (r *Result) Empty() bool {
	return r.Values == nil || r.Values.AllNaN()
}

// Slice cuts one plane through the input volume.
func (s *Sampler) Slice(in Input, opts Options) (*Result, error) {
	vol := in.Volume
	if vol == nil {
		return nil, fmt.Errorf("no volume supplied")
	}

	shape := vol.Shape()
	if shape[0] == 1 || shape[1] == 1 || shape[2] == 1 {
		return nil, fmt.Errorf("%w: volume is %dx%dx%d", ErrSingleSliceVolume, shape[0], shape[1], shape[2])
	}

	if opts.Mask != nil {
		if !opts.Mask.SameSpatialShape(vol) || opts.Mask.Channels() != 1 {
			return nil, fmt.Errorf("%w: mask", ErrShapeMismatch)
		}
	}
	if opts.Background != nil {
		rgb := opts.Background.Channels() == 3 && vol.Channels() == 1
		if !opts.Background.SameSpatialShape(vol) || (opts.Background.Channels() != vol.Channels() && !rgb) {
			return nil, fmt.Errorf("%w: background", ErrShapeMismatch)
		}
	}

	g, err := ResolveGeometry(in.Transform, opts.Location, opts.Orientation, in.Unit, opts.Resolution, shape)
	if err != nil {
		return nil, err
	}

	minU, minV, maxU, maxV, ok := InPlaneBounds(in.Transform, g, shape)
	if !ok {
		return &Result{Geometry: g}, nil
	}

	us := planeRange(minU, maxU, g.Resolution)
	vs := planeRange(minV, maxV, g.Resolution)
	if len(us) == 0 || len(vs) == 0 {
		return &Result{Geometry: g}, nil
	}

	r := s.selectResampler(in.Transform, g, shape, opts.Method)

	values, err := r.resample(vol, us, vs, g)
	if err != nil {
		return nil, fmt.Errorf("resampling data: %w", err)
	}

	var maskPlane, bgPlane *Plane
	if opts.Mask != nil {
		if maskPlane, err = r.resample(opts.Mask, us, vs, g); err != nil {
			return nil, fmt.Errorf("resampling mask: %w", err)
		}
	}
	if opts.Background != nil {
		if bgPlane, err = r.resample(opts.Background, us, vs, g); err != nil {
			return nil, fmt.Errorf("resampling background: %w", err)
		}
	}

	res := &Result{
		Values:     values,
		Mask:       maskPlane,
		Background: bgPlane,
		PlaneX:     us,
		PlaneY:     vs,
		Geometry:   g,
	}

	x0, x1, y0, y1, defined := TrimEdges(values)
	if !defined {
		// Plane lies entirely outside the data; keep the all-NaN plane
		// so the caller can skip rendering.
		return res, nil
	}

	if x0 > 0 || x1 < values.NX-1 || y0 > 0 || y1 < values.NY-1 {
		res.Values = values.crop(x0, x1, y0, y1)
		if maskPlane != nil {
			res.Mask = maskPlane.crop(x0, x1, y0, y1)
		}
		if bgPlane != nil {
			res.Background = bgPlane.crop(x0, x1, y0, y1)
		}
		res.PlaneX = us[x0 : x1+1]
		res.PlaneY = vs[y0 : y1+1]
	}

	res.EdgeX = EdgeCoords(res.PlaneX, g.Resolution)
	res.EdgeY = EdgeCoords(res.PlaneY, g.Resolution)
	res.Corners = make([]models.Vec3, len(res.EdgeX)*len(res.EdgeY))
	for j, v := range res.EdgeY {
		for i, u := range res.EdgeX {
			res.Corners[i+len(res.EdgeX)*j] = g.PlanePoint(u, v)
		}
	}

	return res, nil
}
