package roomextract

import (
	"math"

	"github.com/arxos/roomvision/internal/types"
)

// perimeter returns the total edge length of a closed polygon (no repeated
// closing vertex).
func perimeter(polygon []types.Point) float64 {
	if len(polygon) < 2 {
		return 0
	}
	total := 0.0
	for i := range polygon {
		a := polygon[i]
		b := polygon[(i+1)%len(polygon)]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		total += math.Hypot(dx, dy)
	}
	return total
}

// simplifyPolygon applies Douglas-Peucker simplification to a closed
// polygon with absolute tolerance epsilon = epsilonFactor * perimeter
// (§4.2 step 8): this turns a ragged raster contour into a small set of
// meaningful vertices.
func simplifyPolygon(polygon []types.Point, epsilonFactor float64) []types.Point {
	if len(polygon) < 3 {
		return polygon
	}
	epsilon := epsilonFactor * perimeter(polygon)
	if epsilon <= 0 {
		return polygon
	}

	// Treat the closed ring as an open path that returns to its own start,
	// simplify that path, then drop the duplicated closing vertex.
	path := make([]types.Point, 0, len(polygon)+1)
	path = append(path, polygon...)
	path = append(path, polygon[0])

	simplified := douglasPeucker(path, epsilon)
	if len(simplified) < 2 {
		return simplified
	}
	return simplified[:len(simplified)-1]
}

func douglasPeucker(points []types.Point, epsilon float64) []types.Point {
	if len(points) < 3 {
		return points
	}
	end := len(points) - 1
	dmax := 0.0
	index := 0
	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}
	if dmax > epsilon {
		left := douglasPeucker(points[:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)
		out := make([]types.Point, 0, len(left)+len(right)-1)
		out = append(out, left[:len(left)-1]...)
		out = append(out, right...)
		return out
	}
	return []types.Point{points[0], points[end]}
}

// perpendicularDistance computes the distance from p to the infinite line
// through a and b, falling back to the distance to a when a == b.
func perpendicularDistance(p, a, b types.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	if dx == 0 && dy == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	num := math.Abs(dy*float64(p.X-a.X) - dx*float64(p.Y-a.Y))
	den := math.Hypot(dx, dy)
	return num / den
}
