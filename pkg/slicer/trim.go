package slicer

import "math"

// TrimEdges finds the border rows and columns of a sampled plane that
// are entirely NaN and returns the inclusive index ranges that survive
// on the two in-plane axes. Only the first channel is inspected; the
// caller applies the same ranges to all side planes and coordinate
// vectors. ok is false when the whole plane is NaN.
func TrimEdges(p *Plane) (x0, x1, y0, y1 int, ok bool) {
	definedCol := func(i int) bool {
		for j := 0; j < p.NY; j++ {
			if !math.IsNaN(p.At(i, j, 0)) {
				return true
			}
		}
		return false
	}
	definedRow := func(j int) bool {
		for i := 0; i < p.NX; i++ {
			if !math.IsNaN(p.At(i, j, 0)) {
				return true
			}
		}
		return false
	}

	x0, x1 = 0, p.NX-1
	for x0 <= x1 && !definedCol(x0) {
		x0++
	}
	for x1 >= x0 && !definedCol(x1) {
		x1--
	}

	y0, y1 = 0, p.NY-1
	for y0 <= y1 && !definedRow(y0) {
		y0++
	}
	for y1 >= y0 && !definedRow(y1) {
		y1--
	}

	if x0 > x1 || y0 > y1 {
		return 0, 0, 0, 0, false
	}
	return x0, x1, y0, y1, true
}

// EdgeCoords rebuilds the cell-edge coordinates from trimmed sample
// centers: the surviving range is extended by one extra step and shifted
// by half a resolution step, producing n+1 edges bounding n cells. The
// renderer draws one quadrilateral per sample from these edges, which is
// why edges rather than centers are produced.
func EdgeCoords(centers []float64, res float64) []float64 {
	if len(centers) == 0 {
		return nil
	}
	out := make([]float64, len(centers)+1)
	start := centers[0] - res/2
	for i := range out {
		out[i] = start + float64(i)*res
	}
	return out
}
