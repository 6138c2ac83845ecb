package roomextract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arxos/roomvision/internal/types"
)

func TestSimplifyPolygon_CollapsesCollinearRun(t *testing.T) {
	// A ragged rectangle boundary with many collinear points along each
	// edge should simplify down to its four corners.
	var ragged []types.Point
	for x := 0; x < 10; x++ {
		ragged = append(ragged, types.Point{X: x, Y: 0})
	}
	for y := 0; y < 10; y++ {
		ragged = append(ragged, types.Point{X: 10, Y: y})
	}
	for x := 10; x > 0; x-- {
		ragged = append(ragged, types.Point{X: x, Y: 10})
	}
	for y := 10; y > 0; y-- {
		ragged = append(ragged, types.Point{X: 0, Y: y})
	}

	simplified := simplifyPolygon(ragged, 0.02)
	assert.Equal(t, 4, len(simplified))
}

func TestSimplifyPolygon_TooFewVerticesPassesThrough(t *testing.T) {
	tri := []types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	assert.Equal(t, tri, simplifyPolygon(tri, 0.01))
}

func TestPerimeter_Rectangle(t *testing.T) {
	poly := []types.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	assert.InDelta(t, 40.0, perimeter(poly), 1e-9)
}
