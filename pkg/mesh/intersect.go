// Package mesh computes the intersection of a cutting plane with a
// triangulated surface, producing the line segments where the surface
// crosses the plane. The segments are forwarded to the renderer to draw
// surface outlines on top of a slice.
package mesh

import (
	"fmt"
	"math"

	"github.com/egarza1996/fieldtrip/internal/models"
)

// onPlaneTol is the distance below which a vertex counts as lying on the
// cutting plane.
const onPlaneTol = 1e-9

// Segment is a line segment in world coordinates.
type Segment struct {
	A, B models.Vec3
}

// IntersectPlane returns the segments where the surface crosses the
// plane through the three spanning points p1, p2, p3. Triangles entirely
// on one side contribute nothing; a triangle crossing the plane
// contributes one segment.
func IntersectPlane(surf *models.TriMesh, p1, p2, p3 models.Vec3) ([]Segment, error) {
	n := p2.Sub(p1).Cross(p3.Sub(p1))
	if n.Norm() == 0 {
		return nil, fmt.Errorf("plane points are collinear")
	}
	n = n.Normalize()

	// Signed distance of each vertex to the plane.
	dist := make([]float64, len(surf.Vertices))
	for i, v := range surf.Vertices {
		d := v.Sub(p1).Dot(n)
		if math.Abs(d) < onPlaneTol {
			d = 0
		}
		dist[i] = d
	}

	var segments []Segment
	for fi, f := range surf.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= len(surf.Vertices) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", fi, vi, len(surf.Vertices))
			}
		}

		points := trianglePlanePoints(surf, dist, f)
		if len(points) >= 2 {
			segments = append(segments, Segment{A: points[0], B: points[1]})
		}
	}
	return segments, nil
}

// trianglePlanePoints collects the points where a triangle's edges meet
// the plane, including vertices lying exactly on it.
func trianglePlanePoints(surf *models.TriMesh, dist []float64, f [3]int) []models.Vec3 {
	var points []models.Vec3

	addPoint := func(p models.Vec3) {
		for _, q := range points {
			if p.Sub(q).Norm() < onPlaneTol {
				return
			}
		}
		points = append(points, p)
	}

	for e := 0; e < 3; e++ {
		i, j := f[e], f[(e+1)%3]
		di, dj := dist[i], dist[j]

		if di == 0 {
			addPoint(surf.Vertices[i])
		}
		if di*dj < 0 {
			t := di / (di - dj)
			vi, vj := surf.Vertices[i], surf.Vertices[j]
			addPoint(vi.Add(vj.Sub(vi).Scale(t)))
		}
	}
	return points
}
