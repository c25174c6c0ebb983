package slicer

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// InPlaneBounds projects the corners of the volume bounding box into
// plane coordinates and returns the per-axis min/max, rounded inward to
// the unit's natural rounding grid so that sample points land on nice
// coordinates. ok is false when the rounded box is empty, in which case
// the slice does not cover any of the volume and there is nothing to
// sample.
func InPlaneBounds(tr *models.Transform, g *Geometry, shape [3]int) (minU, minV, maxU, maxV float64, ok bool) {
	if tr == nil {
		tr = models.Identity()
	}

	var us, vs [8]float64
	corners := volumeCorners(shape)
	for i, c := range corners {
		us[i], vs[i] = g.ProjectToPlane(tr.Apply(c))
	}

	grid := g.Unit.RoundingGrid()
	minU = roundUp(floats.Min(us[:]), grid)
	maxU = roundDown(floats.Max(us[:]), grid)
	minV = roundUp(floats.Min(vs[:]), grid)
	maxV = roundDown(floats.Max(vs[:]), grid)

	if minU > maxU || minV > maxV {
		return 0, 0, 0, 0, false
	}
	return minU, minV, maxU, maxV, true
}

// planeRange returns the sample center coordinates from min to max in
// steps of res.
func planeRange(min, max, res float64) []float64 {
	n := int(math.Floor((max-min)/res+1e-9)) + 1
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = min + float64(i)*res
	}
	return out
}

// roundUp rounds v to the nearest multiple of step toward +inf, and
// roundDown toward -inf. A small tolerance keeps values that are already
// on the grid from being pushed a full step.
func roundUp(v, step float64) float64 {
	return math.Ceil(v/step-1e-9) * step
}

func roundDown(v, step float64) float64 {
	return math.Floor(v/step+1e-9) * step
}
