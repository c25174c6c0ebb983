package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// ReadSTL reads a binary STL surface into a triangle mesh. Vertices
// shared between triangles are merged by exact coordinate equality so
// that plane intersection classifies each vertex once.
func ReadSTL(r io.Reader) (*models.TriMesh, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("reading STL triangle count: %w", err)
	}

	mesh := &models.TriMesh{}
	index := make(map[[3]float32]int)

	vertexID := func(v [3]float32) int {
		if id, ok := index[v]; ok {
			return id
		}
		id := len(mesh.Vertices)
		index[v] = id
		mesh.Vertices = append(mesh.Vertices, models.Vec3{
			X: float64(v[0]),
			Y: float64(v[1]),
			Z: float64(v[2]),
		})
		return id
	}

	// Each record is a normal, three vertices, and an attribute count.
	var record struct {
		Normal   [3]float32
		Vertices [3][3]float32
		Attr     uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("reading STL triangle %d: %w", i, err)
		}
		mesh.Faces = append(mesh.Faces, [3]int{
			vertexID(record.Vertices[0]),
			vertexID(record.Vertices[1]),
			vertexID(record.Vertices[2]),
		})
	}
	return mesh, nil
}

// LoadSTL reads a binary STL file into a triangle mesh.
func LoadSTL(path string) (*models.TriMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening STL file: %w", err)
	}
	defer f.Close()

	return ReadSTL(f)
}
