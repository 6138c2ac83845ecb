package main

import (
	"strings"

	"github.com/arxos/roomvision/internal/types"
)

// renderASCIIGrid is the debug-render descendant of the teacher's
// pkg/building ASCII grid renderer: scale the canvas down to a fixed
// character width, then draw each room's bounding box as a rectangle of
// border characters with the room's sequence index inside it. Where the
// teacher's original scaled named-room labels onto a text grid, this
// scales Room.BoundingBox corners instead.
func renderASCIIGrid(imgWidth, imgHeight int, rooms []types.Room, gridWidth int) string {
	if imgWidth <= 0 || imgHeight <= 0 || gridWidth <= 0 {
		return ""
	}

	scale := float64(gridWidth) / float64(imgWidth)
	gridHeight := int(float64(imgHeight) * scale)
	if gridHeight < 1 {
		gridHeight = 1
	}

	cells := make([][]byte, gridHeight)
	for y := range cells {
		cells[y] = make([]byte, gridWidth)
		for x := range cells[y] {
			cells[y][x] = '.'
		}
	}

	scaleX := func(x int) int { return clampCol(int(float64(x)*scale), gridWidth) }
	scaleY := func(y int) int { return clampCol(int(float64(y)*scale), gridHeight) }

	for i, room := range rooms {
		x1, y1 := scaleX(room.BoundingBox.X1), scaleY(room.BoundingBox.Y1)
		x2, y2 := scaleX(room.BoundingBox.X2), scaleY(room.BoundingBox.Y2)
		drawBox(cells, x1, y1, x2, y2)
		label := []byte(itoaOneDigit(i + 1))
		cx, cy := (x1+x2)/2, (y1+y2)/2
		if cy >= 0 && cy < gridHeight && cx >= 0 && cx < gridWidth {
			cells[cy][cx] = label[0]
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func drawBox(cells [][]byte, x1, y1, x2, y2 int) {
	height := len(cells)
	if height == 0 {
		return
	}
	width := len(cells[0])

	for x := x1; x <= x2; x++ {
		setCell(cells, x, y1, '-', width, height)
		setCell(cells, x, y2, '-', width, height)
	}
	for y := y1; y <= y2; y++ {
		setCell(cells, x1, y, '|', width, height)
		setCell(cells, x2, y, '|', width, height)
	}
}

func setCell(cells [][]byte, x, y int, c byte, width, height int) {
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	cells[y][x] = c
}

func clampCol(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

func itoaOneDigit(n int) string {
	if n < 1 {
		return "?"
	}
	if n > 9 {
		return "#"
	}
	return string(rune('0' + n))
}
