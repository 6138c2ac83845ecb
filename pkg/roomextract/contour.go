package roomextract

import "github.com/arxos/roomvision/internal/types"

// traceOuterContour extracts a connected component's outer boundary as an
// ordered, closed sequence of pixel-grid corner vertices (§4.2 step 7).
// Pixel (x, y) occupies the unit square between corners (x, y) and
// (x+1, y+1); every face of a component cell that borders a non-component
// cell contributes one directed unit edge, oriented so that walking the
// directed edges traces the boundary clockwise with the interior on the
// walker's right. When no two cells of the component touch only at a
// corner, every boundary corner has exactly one outgoing edge, so following
// edges[current][0] from the topmost-leftmost corner retraces the full
// outer loop back to the start. The boundaries of any holes form separate
// loops and are not visited.
func traceOuterContour(comp component) []types.Point {
	occupied := make(map[types.Point]bool, len(comp.cells))
	for _, c := range comp.cells {
		occupied[c] = true
	}
	fg := func(x, y int) bool { return occupied[types.Point{X: x, Y: y}] }

	edges := make(map[types.Point][]types.Point, len(comp.cells)*2)
	add := func(a, b types.Point) { edges[a] = append(edges[a], b) }

	for _, c := range comp.cells {
		x, y := c.X, c.Y
		if !fg(x, y-1) {
			add(types.Point{X: x, Y: y}, types.Point{X: x + 1, Y: y}) // top edge, rightward
		}
		if !fg(x+1, y) {
			add(types.Point{X: x + 1, Y: y}, types.Point{X: x + 1, Y: y + 1}) // right edge, downward
		}
		if !fg(x, y+1) {
			add(types.Point{X: x + 1, Y: y + 1}, types.Point{X: x, Y: y + 1}) // bottom edge, leftward
		}
		if !fg(x-1, y) {
			add(types.Point{X: x, Y: y + 1}, types.Point{X: x, Y: y}) // left edge, upward
		}
	}

	if len(edges) == 0 {
		return nil
	}

	start := comp.cells[0]
	for _, c := range comp.cells {
		if c.Y < start.Y || (c.Y == start.Y && c.X < start.X) {
			start = c
		}
	}
	startCorner := types.Point{X: start.X, Y: start.Y}

	boundary := make([]types.Point, 0, len(edges))
	boundary = append(boundary, startCorner)
	current := startCorner

	limit := 4 * (len(comp.cells) + 1)
	for i := 0; i < limit; i++ {
		options := edges[current]
		if len(options) == 0 {
			break
		}
		next := options[0]
		if next == startCorner {
			break
		}
		current = next
		boundary = append(boundary, current)
	}
	return boundary
}
