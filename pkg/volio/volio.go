// Package volio reads and writes volumes as gzip-compressed raw arrays
// of little-endian float64 samples, the interchange format used by the
// command-line tool.
package volio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// ParseDims parses an axis-extent specification such as "181x217x181"
// or "64x64x64x3".
func ParseDims(s string) ([]int, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) < 3 {
		return nil, fmt.Errorf("dimension spec %q needs at least 3 axes", s)
	}

	dims := make([]int, len(parts))
	for i, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parsing dimension %q: %w", p, err)
		}
		dims[i] = d
	}
	return dims, nil
}

// ReadVolume reads a gzip-compressed raw float64 volume with the given
// axis extents.
func ReadVolume(r io.Reader, dims []int) (*models.Volume, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close()

	n := 1
	for _, d := range dims {
		n *= d
	}

	data := make([]float64, n)
	if err := binary.Read(zr, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("reading %d samples: %w", n, err)
	}

	return models.NewVolume(data, dims...)
}

// WriteVolume writes a volume as gzip-compressed raw float64 samples.
func WriteVolume(w io.Writer, vol *models.Volume) error {
	zw := gzip.NewWriter(w)
	if err := binary.Write(zw, binary.LittleEndian, vol.Data); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return zw.Close()
}

// LoadVolume reads a volume from a .raw.gz file.
func LoadVolume(path string, dims []int) (*models.Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening volume file: %w", err)
	}
	defer f.Close()

	return ReadVolume(f, dims)
}

// SaveVolume writes a volume to a .raw.gz file.
func SaveVolume(path string, vol *models.Volume) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating volume file: %w", err)
	}
	defer f.Close()

	return WriteVolume(f, vol)
}

// LoadTransform reads a 4x4 affine from a text file holding 16
// whitespace-separated values in row-major order.
func LoadTransform(path string) (*models.Transform, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transform file: %w", err)
	}

	fields := strings.Fields(string(data))
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing transform value %q: %w", f, err)
		}
		values = append(values, v)
	}

	return models.NewTransform(values)
}
