// Package interpolation provides resampling of regularly gridded 3D data
// at arbitrary fractional coordinates. It supports nearest-neighbor,
// trilinear, and tricubic (Catmull-Rom) methods, and returns NaN for any
// query point outside the grid domain.
package interpolation

import (
	"fmt"
	"math"
	"strings"
)

// Method selects the interpolation kernel.
type Method int

const (
	Nearest Method = iota
	Linear
	Cubic
)

// ParseMethod converts a method name ("nearest", "linear", "cubic") into
// a Method value.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "nearest":
		return Nearest, nil
	case "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("unknown interpolation method %q", s)
	}
}

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Grid3D interpolates over a regular 3D grid with optional trailing
// channels. Grid nodes sit at integer coordinates 0..n-1 along each axis;
// queries outside [0, n-1] on any axis yield NaN.
type Grid3D struct {
	data       []float64
	nx, ny, nz int
	channels   int
}

// NewGrid3D wraps flat data laid out with the x axis varying fastest:
// index = x + nx*(y + ny*(z + nz*c)).
func NewGrid3D(data []float64, nx, ny, nz, channels int) (*Grid3D, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 || channels <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%dx%dx%d", nx, ny, nz, channels)
	}
	if len(data) != nx*ny*nz*channels {
		return nil, fmt.Errorf("data length %d does not match %dx%dx%dx%d grid", len(data), nx, ny, nz, channels)
	}
	return &Grid3D{data: data, nx: nx, ny: ny, nz: nz, channels: channels}, nil
}

// Channels returns the number of trailing-axis channels.
func (g *Grid3D) Channels() int { return g.channels }

func (g *Grid3D) at(x, y, z, c int) float64 {
	return g.data[x+g.nx*(y+g.ny*(z+g.nz*c))]
}

// At evaluates the grid at fractional coordinates (x, y, z) in channel c
// using the given method. Points outside the grid domain return NaN.
func (g *Grid3D) At(x, y, z float64, c int, m Method) float64 {
	if x < 0 || x > float64(g.nx-1) ||
		y < 0 || y > float64(g.ny-1) ||
		z < 0 || z > float64(g.nz-1) {
		return math.NaN()
	}

	switch m {
	case Nearest:
		return g.at(int(math.Round(x)), int(math.Round(y)), int(math.Round(z)), c)
	case Linear:
		return g.trilinear(x, y, z, c)
	case Cubic:
		return g.tricubic(x, y, z, c)
	default:
		return math.NaN()
	}
}

// trilinear performs linear interpolation over the 8 surrounding nodes.
func (g *Grid3D) trilinear(x, y, z float64, c int) float64 {
	x0, fx := split(x, g.nx)
	y0, fy := split(y, g.ny)
	z0, fz := split(z, g.nz)

	v000 := g.at(x0, y0, z0, c)
	v100 := g.at(x0+1, y0, z0, c)
	v010 := g.at(x0, y0+1, z0, c)
	v110 := g.at(x0+1, y0+1, z0, c)
	v001 := g.at(x0, y0, z0+1, c)
	v101 := g.at(x0+1, y0, z0+1, c)
	v011 := g.at(x0, y0+1, z0+1, c)
	v111 := g.at(x0+1, y0+1, z0+1, c)

	v00 := v000 + fx*(v100-v000)
	v10 := v010 + fx*(v110-v010)
	v01 := v001 + fx*(v101-v001)
	v11 := v011 + fx*(v111-v011)

	v0 := v00 + fy*(v10-v00)
	v1 := v01 + fy*(v11-v01)

	return v0 + fz*(v1-v0)
}

// split decomposes a coordinate into a base node index and fraction,
// keeping the base inside [0, n-2] so that base+1 remains a valid node.
func split(v float64, n int) (int, float64) {
	i := int(math.Floor(v))
	if i > n-2 {
		i = n - 2
	}
	if i < 0 {
		i = 0
	}
	return i, v - float64(i)
}

// tricubic performs separable Catmull-Rom interpolation over the 64
// surrounding nodes, clamping neighbor indices at the grid boundary.
func (g *Grid3D) tricubic(x, y, z float64, c int) float64 {
	x0, fx := split(x, g.nx)
	y0, fy := split(y, g.ny)
	z0, fz := split(z, g.nz)

	var zv [4]float64
	for dz := -1; dz <= 2; dz++ {
		var yv [4]float64
		for dy := -1; dy <= 2; dy++ {
			var xv [4]float64
			for dx := -1; dx <= 2; dx++ {
				xv[dx+1] = g.at(clamp(x0+dx, g.nx), clamp(y0+dy, g.ny), clamp(z0+dz, g.nz), c)
			}
			yv[dy+1] = catmullRom(xv, fx)
		}
		zv[dz+1] = catmullRom(yv, fy)
	}
	return catmullRom(zv, fz)
}

// catmullRom evaluates the cubic Catmull-Rom spline through four
// consecutive samples at fraction t in [0, 1] between p[1] and p[2].
func catmullRom(p [4]float64, t float64) float64 {
	return p[1] + 0.5*t*(p[2]-p[0]+
		t*(2*p[0]-5*p[1]+4*p[2]-p[3]+
			t*(3*(p[1]-p[2])+p[3]-p[0])))
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
