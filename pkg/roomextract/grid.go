// Package roomextract implements component B: the geometric room extractor.
// Given wall boxes and a canvas size it computes room polygons
// deterministically via rasterization, morphology, connected-component
// labeling, contour extraction, and polygon simplification (spec §4.2).
package roomextract

import "github.com/arxos/roomvision/internal/types"

// grid is a row-major binary raster buffer: true means foreground (wall),
// false means background (potential interior). Indexing matches the
// row-major tie-break rule of §4.2 step 10 directly.
type grid struct {
	width, height int
	cells         []bool
}

func newGrid(width, height int) *grid {
	return &grid{width: width, height: height, cells: make([]bool, width*height)}
}

func (g *grid) at(x, y int) bool {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return false
	}
	return g.cells[y*g.width+x]
}

func (g *grid) set(x, y int, v bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = v
}

func (g *grid) clone() *grid {
	out := &grid{width: g.width, height: g.height, cells: make([]bool, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// rasterizeWalls builds the initial foreground/background buffer (§4.2
// steps 1-3): every wall box, clipped to the canvas, is painted foreground
// (closed/wall); everything else starts background (open/interior).
func rasterizeWalls(canvas types.Canvas, walls []types.Wall) *grid {
	g := newGrid(canvas.Width, canvas.Height)
	for _, w := range walls {
		x1, y1, x2, y2 := clipBox(w.Box, canvas)
		if x1 > x2 || y1 > y2 {
			continue // entirely outside the canvas: clipped to nothing, skipped
		}
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				g.set(x, y, true)
			}
		}
	}
	return g
}

// clipBox clips a wall's box to [0, W-1] x [0, H-1], inclusive on both
// endpoints. Returns x1 > x2 (or y1 > y2) when the box lies entirely
// outside the canvas.
func clipBox(box types.Rect, canvas types.Canvas) (x1, y1, x2, y2 int) {
	x1 = max(box.X1, 0)
	y1 = max(box.Y1, 0)
	x2 = min(box.X2-1, canvas.Width-1)
	y2 = min(box.Y2-1, canvas.Height-1)
	return
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
