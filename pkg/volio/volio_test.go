package volio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// TestParseDims verifies dimension spec parsing
func TestParseDims(t *testing.T) {
	dims, err := ParseDims("181x217x181")
	if err != nil {
		t.Fatalf("ParseDims failed: %v", err)
	}
	if len(dims) != 3 || dims[0] != 181 || dims[1] != 217 || dims[2] != 181 {
		t.Errorf("ParseDims returned %v", dims)
	}

	dims, err = ParseDims("4x5x6x3")
	if err != nil {
		t.Fatalf("ParseDims with channels failed: %v", err)
	}
	if len(dims) != 4 || dims[3] != 3 {
		t.Errorf("ParseDims returned %v", dims)
	}

	if _, err := ParseDims("64x64"); err == nil {
		t.Error("Expected an error for fewer than 3 axes")
	}
	if _, err := ParseDims("64xax64"); err == nil {
		t.Error("Expected an error for a non-numeric extent")
	}
}

// TestVolumeRoundTrip verifies writing and reading a compressed volume
func TestVolumeRoundTrip(t *testing.T) {
	data := make([]float64, 3*4*5)
	for i := range data {
		data[i] = float64(i) * 0.5
	}
	vol, err := models.NewVolume(data, 3, 4, 5)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteVolume(&buf, vol); err != nil {
		t.Fatalf("WriteVolume failed: %v", err)
	}

	got, err := ReadVolume(&buf, []int{3, 4, 5})
	if err != nil {
		t.Fatalf("ReadVolume failed: %v", err)
	}

	for i := range data {
		if got.Data[i] != data[i] {
			t.Fatalf("Sample %d: got %g, want %g", i, got.Data[i], data[i])
		}
	}
}

// TestLoadSaveVolume verifies the file-based round trip
func TestLoadSaveVolume(t *testing.T) {
	vol, err := models.NewVolume(make([]float64, 2*3*4), 2, 3, 4)
	if err != nil {
		t.Fatalf("NewVolume failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "vol.raw.gz")
	if err := SaveVolume(path, vol); err != nil {
		t.Fatalf("SaveVolume failed: %v", err)
	}
	if _, err := LoadVolume(path, []int{2, 3, 4}); err != nil {
		t.Fatalf("LoadVolume failed: %v", err)
	}

	// A wrong extent makes the stream too short
	if _, err := LoadVolume(path, []int{2, 3, 5}); err == nil {
		t.Error("Expected an error for mismatched dimensions")
	}
}

// TestLoadTransform verifies affine file parsing
func TestLoadTransform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affine.txt")
	content := "2 0 0 5\n0 3 0 -7\n0 0 4 9\n0 0 0 1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tr, err := LoadTransform(path)
	if err != nil {
		t.Fatalf("LoadTransform failed: %v", err)
	}

	p := tr.Apply(models.Vec3{X: 1, Y: 1, Z: 1})
	want := models.Vec3{X: 7, Y: -4, Z: 13}
	if p.Sub(want).Norm() > 1e-12 {
		t.Errorf("Transformed point %v, want %v", p, want)
	}

	// Too few values
	if err := os.WriteFile(path, []byte("1 2 3"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadTransform(path); err == nil {
		t.Error("Expected an error for a short transform file")
	}
}
