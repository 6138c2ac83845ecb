package visualize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/roomvision/internal/types"
)

func sampleRooms() []types.Room {
	return []types.Room{
		{
			ID:          "room_001",
			Polygon:     []types.Point{{X: 10, Y: 10}, {X: 50, Y: 10}, {X: 50, Y: 50}, {X: 10, Y: 50}},
			BoundingBox: types.Rect{X1: 10, Y1: 10, X2: 50, Y2: 50},
			AreaPixels:  1600,
			Centroid:    types.Point{X: 30, Y: 30},
			Confidence:  0.95,
			ShapeType:   types.ShapeRectangle,
			NumVertices: 4,
		},
	}
}

func TestRender_Idempotent(t *testing.T) {
	canvas := types.Canvas{Width: 100, Height: 100}
	rooms := sampleRooms()

	first, err := Render(nil, canvas, rooms)
	require.NoError(t, err)
	second, err := Render(nil, canvas, rooms)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestRender_EmptyRoomsStillProducesImage(t *testing.T) {
	canvas := types.Canvas{Width: 100, Height: 100}
	out, err := Render(nil, canvas, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
