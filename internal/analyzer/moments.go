package analyzer

import (
	"image"
	"sort"

	"github.com/ivlev/dotfinder/internal/config"
)

// Moments holds raw spatial moments scaled to integers.
// The centroid is (M10/M00, M01/M00) with all three values sharing a scale.
type Moments struct {
	M00, M10, M01 int64
}

// PolygonMoments computes the area moments of a closed polygon with
// Green's theorem. M00 is 6x the area and M10, M01 are 6x the first order
// moments, so integer vertices give exact results. Orientation is
// normalized to a non-negative area.
func PolygonMoments(pts []image.Point) Moments {
	var a2, mx, my int64
	n := len(pts)
	for i := 0; i < n; i++ {
		p, q := pts[i], pts[(i+1)%n]
		cross := int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
		a2 += cross
		mx += int64(p.X+q.X) * cross
		my += int64(p.Y+q.Y) * cross
	}
	m := Moments{M00: 3 * a2, M10: mx, M01: my}
	if m.M00 < 0 {
		m = Moments{M00: -m.M00, M10: -m.M10, M01: -m.M01}
	}
	return m
}

// BlobMoments returns the moments of the blob's pixel mass.
func BlobMoments(b Blob) Moments {
	return Moments{M00: b.Area, M10: b.SumX, M01: b.SumY}
}

// Centroid truncates toward zero. ok is false for zero-area moments.
func (m Moments) Centroid() (image.Point, bool) {
	if m.M00 == 0 {
		return image.Point{}, false
	}
	return image.Point{X: int(m.M10 / m.M00), Y: int(m.M01 / m.M00)}, true
}

// Centroids computes one point per blob with positive area, keeping blob order.
func Centroids(blobs []Blob, mode string) []image.Point {
	points := []image.Point{}
	for _, b := range blobs {
		var m Moments
		if mode == config.MomentsArea {
			m = BlobMoments(b)
		} else {
			m = PolygonMoments(b.Contour)
		}
		if c, ok := m.Centroid(); ok {
			points = append(points, c)
		}
	}
	return points
}

// SortMarkers orders points by y, then by x.
func SortMarkers(points []image.Point) {
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}
