package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arxos/roomvision/internal/types"
)

func TestRenderASCIIGrid_DrawsOneBoxPerRoom(t *testing.T) {
	rooms := []types.Room{
		{BoundingBox: types.Rect{X1: 0, Y1: 0, X2: 50, Y2: 50}},
		{BoundingBox: types.Rect{X1: 60, Y1: 0, X2: 100, Y2: 50}},
	}
	grid := renderASCIIGrid(200, 100, rooms, 80)

	assert.Contains(t, grid, "-")
	assert.Contains(t, grid, "|")
	assert.Contains(t, grid, "1")
	assert.Contains(t, grid, "2")
	lines := strings.Split(strings.TrimRight(grid, "\n"), "\n")
	assert.NotEmpty(t, lines)
	assert.Equal(t, 80, len(lines[0]))
}

func TestRenderASCIIGrid_EmptyRoomsStillRendersGrid(t *testing.T) {
	grid := renderASCIIGrid(200, 100, nil, 40)
	assert.NotEmpty(t, grid)
}
