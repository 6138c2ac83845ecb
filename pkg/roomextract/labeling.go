package roomextract

import "github.com/arxos/roomvision/internal/types"

// component is a single labeled connected region of open (interior)
// pixels, with the owning-struct field names called for by §9's "wrap
// these in small, owning structs" note.
type component struct {
	label       int
	cells       []types.Point
	area        int
	boundingBox types.Rect
	centroid    types.Point
}

// eightNeighborOffsets enumerates the 8-connected neighborhood used by the
// labeling pass (§4.2 step 5).
var eightNeighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// labelComponents runs 8-connected connected-component labeling over the
// open (background/interior) cells of g -- the cleaned mask produced by
// closeThenOpen. Label 0 is the labeling operation's own background (wall
// cells plus anything not yet visited) and is never emitted as a
// component. Components are returned in the order their first cell is
// encountered by a row-major top-to-bottom, left-to-right scan, which is
// also BFS seed order -- this is what gives the extractor's room
// identifiers their deterministic, gap-free emission order (§4.2 step 10).
func labelComponents(g *grid) []component {
	visited := make([]bool, len(g.cells))
	var components []component
	nextLabel := 1

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := y*g.width + x
			if g.cells[idx] || visited[idx] {
				continue // wall cell, or already claimed by an earlier component
			}
			cells := floodFill(g, visited, x, y)
			components = append(components, buildComponent(nextLabel, cells))
			nextLabel++
		}
	}
	return components
}

// floodFill performs an 8-connected BFS flood fill over open cells
// starting at (x0, y0), marking every visited cell so each cell belongs to
// exactly one component.
func floodFill(g *grid, visited []bool, x0, y0 int) []types.Point {
	startIdx := y0*g.width + x0
	visited[startIdx] = true
	queue := []types.Point{{X: x0, Y: y0}}
	cells := make([]types.Point, 0, 64)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		cells = append(cells, p)

		for _, off := range eightNeighborOffsets {
			nx, ny := p.X+off[0], p.Y+off[1]
			if nx < 0 || nx >= g.width || ny < 0 || ny >= g.height {
				continue
			}
			nIdx := ny*g.width + nx
			if g.cells[nIdx] || visited[nIdx] {
				continue
			}
			visited[nIdx] = true
			queue = append(queue, types.Point{X: nx, Y: ny})
		}
	}
	return cells
}

// buildComponent computes the area, bounding box, and centroid of a set of
// cells belonging to one label.
func buildComponent(label int, cells []types.Point) component {
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := cells[0].X, cells[0].Y
	sumX, sumY := 0, 0
	for _, c := range cells {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
		sumX += c.X
		sumY += c.Y
	}
	n := len(cells)
	return component{
		label: label,
		cells: cells,
		area:  n,
		boundingBox: types.Rect{
			X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1,
		},
		centroid: types.Point{X: sumX / n, Y: sumY / n},
	}
}
