package slicer

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// intTol is the tolerance for treating a coordinate as integral and an
// orientation component as exactly 0 or 1.
const intTol = 1e-9

// Geometry holds the resolved cutting-plane geometry: the normalized
// orientation, the projected location, the in-plane basis, and the
// matrices mapping plane coordinates to world and voxel space.
type Geometry struct {
	// Orientation is the unit plane normal in world space
	Orientation models.Vec3

	// Location is the requested location projected onto the orientation
	// axis. Any component of the requested point perpendicular to the
	// orientation is discarded: the plane passes through the projection
	// of the point onto the normal axis, not necessarily through the
	// point itself.
	Location models.Vec3

	// BasisX and BasisY complete the orientation into an orthonormal
	// basis spanning the plane
	BasisX, BasisY models.Vec3

	// PlaneToWorld maps homogeneous plane coordinates (u, v, 0, 1) to
	// world space; its columns are [BasisX, BasisY, Orientation, Location]
	PlaneToWorld *mat.Dense

	// PlaneToVoxel is the inverse voxel-to-world transform composed with
	// PlaneToWorld, mapping plane coordinates directly to 1-based voxel
	// coordinates
	PlaneToVoxel *mat.Dense

	// Unit is the resolved world-space unit
	Unit Unit

	// Resolution is the in-plane sample spacing in Unit
	Resolution float64
}

// ResolveGeometry normalizes the plane parameters and derives the plane
// basis and coordinate mappings for a volume with the given spatial shape.
//
// A nil transform means identity. A nil location defaults to the volume
// center when the transform is identity, and to the world origin
// otherwise. UnitUnknown and a zero resolution are inferred.
func ResolveGeometry(tr *models.Transform, loc, ori *models.Vec3, unit Unit, res float64, shape [3]int) (*Geometry, error) {
	if tr == nil {
		tr = models.Identity()
	}

	orientation := models.Vec3{Z: 1}
	if ori != nil {
		orientation = *ori
	}
	if orientation.Norm() == 0 {
		return nil, ErrDegenerateOrientation
	}
	orientation = orientation.Normalize()

	location := models.Vec3{}
	if loc != nil {
		location = *loc
	} else if tr.IsIdentity() {
		location = models.Vec3{
			X: (float64(shape[0]) + 1) / 2,
			Y: (float64(shape[1]) + 1) / 2,
			Z: (float64(shape[2]) + 1) / 2,
		}
	}

	// Keep only the orientation-parallel component of the location.
	location = orientation.Scale(location.Dot(orientation))

	basisX, basisY := planeBasis(orientation)

	planeToWorld := mat.NewDense(4, 4, []float64{
		basisX.X, basisY.X, orientation.X, location.X,
		basisX.Y, basisY.Y, orientation.Y, location.Y,
		basisX.Z, basisY.Z, orientation.Z, location.Z,
		0, 0, 0, 1,
	})

	inv, err := tr.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}

	planeToVoxel := mat.NewDense(4, 4, nil)
	planeToVoxel.Mul(inv.Matrix(), planeToWorld)

	if unit == UnitUnknown {
		unit = InferUnit(tr, shape)
	}
	if res == 0 {
		res = unit.FromMillimeter(1)
	}

	return &Geometry{
		Orientation:  orientation,
		Location:     location,
		BasisX:       basisX,
		BasisY:       basisY,
		PlaneToWorld: planeToWorld,
		PlaneToVoxel: planeToVoxel,
		Unit:         unit,
		Resolution:   res,
	}, nil
}

// planeBasis completes a unit normal into an orthonormal basis by taking
// the 2nd and 3rd left-singular vectors of the 3x4 matrix [I3 | n]. The
// decomposition is deterministic for a given normal, which pins down the
// in-plane axis directions and therefore the absolute placement and
// handedness of the sampled image.
func planeBasis(n models.Vec3) (x, y models.Vec3) {
	m := mat.NewDense(3, 4, []float64{
		1, 0, 0, n.X,
		0, 1, 0, n.Y,
		0, 0, 1, n.Z,
	})

	var svd mat.SVD
	if ok := svd.Factorize(m, mat.SVDThin); !ok {
		// Cannot happen for a finite normal; fall back to a degenerate basis.
		return models.Vec3{}, models.Vec3{}
	}

	var u mat.Dense
	svd.UTo(&u)

	x = models.Vec3{X: u.At(0, 1), Y: u.At(1, 1), Z: u.At(2, 1)}
	y = models.Vec3{X: u.At(0, 2), Y: u.At(1, 2), Z: u.At(2, 2)}
	return x, y
}

// ProjectToPlane returns the in-plane coordinates of a world-space point
// relative to the plane location.
func (g *Geometry) ProjectToPlane(p models.Vec3) (u, v float64) {
	d := p.Sub(g.Location)
	return d.Dot(g.BasisX), d.Dot(g.BasisY)
}

// PlanePoint maps in-plane coordinates (u, v) to world space.
func (g *Geometry) PlanePoint(u, v float64) models.Vec3 {
	return g.Location.Add(g.BasisX.Scale(u)).Add(g.BasisY.Scale(v))
}

// VoxelPoint maps in-plane coordinates (u, v) to 1-based voxel
// coordinates through PlaneToVoxel.
func (g *Geometry) VoxelPoint(u, v float64) models.Vec3 {
	m := g.PlaneToVoxel
	return models.Vec3{
		X: m.At(0, 0)*u + m.At(0, 1)*v + m.At(0, 3),
		Y: m.At(1, 0)*u + m.At(1, 1)*v + m.At(1, 3),
		Z: m.At(2, 0)*u + m.At(2, 1)*v + m.At(2, 3),
	}
}

// NeedsInterpolation reports whether sampling the plane requires general
// interpolation. It returns false only when the transform is identity,
// the projected location is integral, the orientation is a positive unit
// axis, and the resolution is an integer; in that case a direct
// axis-aligned slab selection produces the same result.
func NeedsInterpolation(tr *models.Transform, g *Geometry) bool {
	if tr != nil && !tr.IsIdentity() {
		return true
	}
	if !nearInteger(g.Location.X) || !nearInteger(g.Location.Y) || !nearInteger(g.Location.Z) {
		return true
	}
	if ConstAxis(g.Orientation) < 0 {
		return true
	}
	if !nearInteger(g.Resolution) {
		return true
	}
	return false
}

// ConstAxis classifies an orientation as one of the positive unit axes,
// returning 0, 1, or 2 for +x, +y, +z, and -1 otherwise.
func ConstAxis(ori models.Vec3) int {
	comps := [3]float64{ori.X, ori.Y, ori.Z}
	axis := -1
	for i, c := range comps {
		switch {
		case math.Abs(c-1) < intTol:
			if axis >= 0 {
				return -1
			}
			axis = i
		case math.Abs(c) < intTol:
			// zero component, fine
		default:
			return -1
		}
	}
	return axis
}

func nearInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) < intTol
}
