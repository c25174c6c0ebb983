package interpolation

import (
	"math"
	"testing"
)

// TestParseMethod verifies method name parsing
func TestParseMethod(t *testing.T) {
	cases := []struct {
		name string
		want Method
	}{
		{"nearest", Nearest},
		{"Linear", Linear},
		{"CUBIC", Cubic},
	}
	for _, tc := range cases {
		got, err := ParseMethod(tc.name)
		if err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("ParseMethod(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}

	if _, err := ParseMethod("bilinear"); err == nil {
		t.Error("Expected an error for an unknown method name")
	}
}

// TestNewGrid3DValidation verifies dimension checking
func TestNewGrid3DValidation(t *testing.T) {
	if _, err := NewGrid3D(make([]float64, 8), 2, 2, 2, 1); err != nil {
		t.Errorf("Valid grid rejected: %v", err)
	}
	if _, err := NewGrid3D(make([]float64, 7), 2, 2, 2, 1); err == nil {
		t.Error("Expected an error for mismatched data length")
	}
	if _, err := NewGrid3D(nil, 0, 2, 2, 1); err == nil {
		t.Error("Expected an error for a zero dimension")
	}
}

// TestNearestAtNodes verifies that nearest interpolation reproduces the
// grid values exactly at node coordinates
func TestNearestAtNodes(t *testing.T) {
	g := rampGrid(4, 4, 4)

	for z := 0; z < 4; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				want := ramp(float64(x), float64(y), float64(z))
				got := g.At(float64(x), float64(y), float64(z), 0, Nearest)
				if got != want {
					t.Fatalf("At(%d,%d,%d) = %g, want %g", x, y, z, got, want)
				}
			}
		}
	}
}

// TestOutOfDomainIsNaN verifies that queries outside the grid return NaN
// for every method
func TestOutOfDomainIsNaN(t *testing.T) {
	g := rampGrid(4, 4, 4)

	points := [][3]float64{
		{-0.1, 1, 1},
		{1, -0.1, 1},
		{1, 1, -0.1},
		{3.1, 1, 1},
		{1, 3.1, 1},
		{1, 1, 3.1},
	}
	for _, m := range []Method{Nearest, Linear, Cubic} {
		for _, p := range points {
			if v := g.At(p[0], p[1], p[2], 0, m); !math.IsNaN(v) {
				t.Errorf("Method %s at %v: got %g, want NaN", m, p, v)
			}
		}
	}
}

// TestLinearMidpoints verifies trilinear interpolation against the
// analytic value of a linear ramp
func TestLinearMidpoints(t *testing.T) {
	g := rampGrid(4, 4, 4)

	points := [][3]float64{
		{0.5, 0, 0},
		{1.5, 2.5, 0.5},
		{3, 3, 3},
		{0.25, 1.75, 2.5},
	}
	for _, p := range points {
		want := ramp(p[0], p[1], p[2])
		got := g.At(p[0], p[1], p[2], 0, Linear)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("Linear at %v = %g, want %g", p, got, want)
		}
	}
}

// TestCubicReproducesLinearRamp verifies that Catmull-Rom interpolation
// is exact for linear data away from the grid boundary
func TestCubicReproducesLinearRamp(t *testing.T) {
	g := rampGrid(5, 5, 5)

	points := [][3]float64{
		{1.5, 2.25, 1.5},
		{2, 2, 2},
		{1.1, 1.9, 2.5},
	}
	for _, p := range points {
		want := ramp(p[0], p[1], p[2])
		got := g.At(p[0], p[1], p[2], 0, Cubic)
		if math.Abs(got-want) > 1e-10 {
			t.Errorf("Cubic at %v = %g, want %g", p, got, want)
		}
	}
}

// TestChannels verifies that trailing channels are interpolated
// independently
func TestChannels(t *testing.T) {
	nx, ny, nz := 3, 3, 3
	data := make([]float64, nx*ny*nz*2)
	for i := 0; i < nx*ny*nz; i++ {
		data[i] = 1
		data[nx*ny*nz+i] = 2
	}

	g, err := NewGrid3D(data, nx, ny, nz, 2)
	if err != nil {
		t.Fatalf("NewGrid3D failed: %v", err)
	}

	if v := g.At(1.5, 1.5, 1.5, 0, Linear); v != 1 {
		t.Errorf("Channel 0: got %g, want 1", v)
	}
	if v := g.At(1.5, 1.5, 1.5, 1, Linear); v != 2 {
		t.Errorf("Channel 1: got %g, want 2", v)
	}
}

// ramp is a linear function of the coordinates, reproduced exactly by
// both linear and cubic interpolation
func ramp(x, y, z float64) float64 {
	return 2*x + 3*y + 5*z + 7
}

func rampGrid(nx, ny, nz int) *Grid3D {
	data := make([]float64, nx*ny*nz)
	idx := 0
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[idx] = ramp(float64(x), float64(y), float64(z))
				idx++
			}
		}
	}
	g, err := NewGrid3D(data, nx, ny, nz, 1)
	if err != nil {
		panic(err)
	}
	return g
}
