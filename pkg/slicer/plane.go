package slicer

import "math"

// Plane is a 2D resampled plane with optional trailing channels, laid
// out with the first in-plane axis varying fastest:
// index = i + NX*(j + NY*c).
type Plane struct {
	Data     []float64
	NX, NY   int
	Channels int
}

func newPlane(nx, ny, channels int) *Plane {
	return &Plane{
		Data:     make([]float64, nx*ny*channels),
		NX:       nx,
		NY:       ny,
		Channels: channels,
	}
}

// At returns the sample at in-plane position (i, j) in channel c.
func (p *Plane) At(i, j, c int) float64 {
	return p.Data[i+p.NX*(j+p.NY*c)]
}

func (p *Plane) set(i, j, c int, v float64) {
	p.Data[i+p.NX*(j+p.NY*c)] = v
}

// AllNaN reports whether every sample in the plane is NaN.
func (p *Plane) AllNaN() bool {
	for _, v := range p.Data {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// crop returns a copy of the plane restricted to the inclusive index
// ranges [x0, x1] and [y0, y1] on the two in-plane axes.
func (p *Plane) crop(x0, x1, y0, y1 int) *Plane {
	out := newPlane(x1-x0+1, y1-y0+1, p.Channels)
	for c := 0; c < p.Channels; c++ {
		for j := y0; j <= y1; j++ {
			for i := x0; i <= x1; i++ {
				out.set(i-x0, j-y0, c, p.At(i, j, c))
			}
		}
	}
	return out
}
