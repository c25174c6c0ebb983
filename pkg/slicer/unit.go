package slicer

import (
	"fmt"
	"math"
	"strings"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// Unit is the physical length unit of the world coordinate space.
type Unit int

const (
	UnitUnknown Unit = iota
	Meter
	Centimeter
	Millimeter
)

// ParseUnit converts a unit name ("m", "cm", "mm") into a Unit value.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "m", "meter":
		return Meter, nil
	case "cm", "centimeter":
		return Centimeter, nil
	case "mm", "millimeter":
		return Millimeter, nil
	default:
		return UnitUnknown, fmt.Errorf("unknown unit %q", s)
	}
}

// String returns the unit abbreviation.
func (u Unit) String() string {
	switch u {
	case Meter:
		return "m"
	case Centimeter:
		return "cm"
	case Millimeter:
		return "mm"
	default:
		return "unknown"
	}
}

// RoundingGrid returns the natural rounding step for coordinates in this
// unit, used to align slice bounds to nice values.
func (u Unit) RoundingGrid() float64 {
	switch u {
	case Meter:
		return 0.01
	case Centimeter:
		return 0.1
	default:
		return 1
	}
}

// FromMillimeter converts a length in millimeters into this unit.
func (u Unit) FromMillimeter(mm float64) float64 {
	switch u {
	case Meter:
		return mm * 0.001
	case Centimeter:
		return mm * 0.1
	default:
		return mm
	}
}

// nominalDiagonal is the expected bounding-box diagonal of a head-sized
// volume expressed in each unit, used for unit guessing.
func (u Unit) nominalDiagonal() float64 {
	switch u {
	case Meter:
		return 0.2
	case Centimeter:
		return 20
	default:
		return 200
	}
}

// InferUnit guesses the world-space unit of a volume. A volume with an
// identity transform is assumed to be close to millimeters; otherwise the
// unit whose expected anatomical extent best matches the world-space
// bounding-box diagonal is chosen.
func InferUnit(tr *models.Transform, shape [3]int) Unit {
	if tr == nil || tr.IsIdentity() {
		return Millimeter
	}

	lo, hi := worldBoundingBox(tr, shape)
	diag := hi.Sub(lo).Norm()
	if diag <= 0 {
		return Millimeter
	}

	best := Millimeter
	bestScore := math.Inf(1)
	for _, u := range []Unit{Meter, Centimeter, Millimeter} {
		score := math.Abs(math.Log10(diag / u.nominalDiagonal()))
		if score < bestScore {
			best = u
			bestScore = score
		}
	}
	return best
}

// worldBoundingBox maps the 8 corners of the volume (extended half a
// voxel beyond each face, in 1-based voxel coordinates) to world space
// and returns the axis-aligned bounds.
func worldBoundingBox(tr *models.Transform, shape [3]int) (lo, hi models.Vec3) {
	lo = models.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = models.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for _, c := range volumeCorners(shape) {
		p := tr.Apply(c)
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo, hi
}

// volumeCorners returns the 8 corners of the volume bounding box in
// 1-based voxel coordinates, half a voxel beyond each face.
func volumeCorners(shape [3]int) [8]models.Vec3 {
	xs := [2]float64{0.5, float64(shape[0]) + 0.5}
	ys := [2]float64{0.5, float64(shape[1]) + 0.5}
	zs := [2]float64{0.5, float64(shape[2]) + 0.5}

	var corners [8]models.Vec3
	i := 0
	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				corners[i] = models.Vec3{X: x, Y: y, Z: z}
				i++
			}
		}
	}
	return corners
}
