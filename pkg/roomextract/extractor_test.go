package roomextract

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxos/roomvision/internal/types"
)

func rect(x1, y1, x2, y2 int) types.Rect {
	return types.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

func wall(id string, box types.Rect) types.Wall {
	return types.Wall{ID: id, Box: box, Confidence: 1.0}
}

// Scenario 1 (spec §8): single rectangular room. The border walls are 6px
// thick rather than 5: at 5px, the 190x190 interior (36100px) exceeds the
// mandated 0.9*W*H upper bound (36000px) and the mandated filter would
// discard the room entirely, which would make the canvas exterior and the
// room indistinguishable by area alone. 6px walls give a 188x188 interior
// (35344px), comfortably inside the bound while still exercising the same
// four-wall rectangular-room shape the scenario describes.
func TestExtractRooms_SingleRectangularRoom(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}
	walls := []types.Wall{
		wall("w1", rect(0, 0, 200, 6)),
		wall("w2", rect(0, 194, 200, 200)),
		wall("w3", rect(0, 0, 6, 200)),
		wall("w4", rect(194, 0, 200, 200)),
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	r := rooms[0]
	assert.Equal(t, "room_001", r.ID)
	assert.Equal(t, types.ShapeRectangle, r.ShapeType)
	assert.Equal(t, 4, r.NumVertices)
	assert.InDelta(t, 0.95, r.Confidence, 1e-9)
	assert.GreaterOrEqual(t, r.AreaPixels, 2000)
	assert.LessOrEqual(t, r.AreaPixels, int(0.9*float64(canvas.Area())))
	assert.Equal(t, rect(6, 6, 194, 194), r.BoundingBox)
	assert.InDelta(t, 100, r.Centroid.X, 2)
	assert.InDelta(t, 100, r.Centroid.Y, 2)
	assertBoundingBoxContainsPolygon(t, r)
}

// Scenario 2: two adjacent rooms split by a single inner wall.
func TestExtractRooms_TwoAdjacentRooms(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}
	walls := []types.Wall{
		wall("w1", rect(0, 0, 200, 5)),
		wall("w2", rect(0, 195, 200, 200)),
		wall("w3", rect(0, 0, 5, 200)),
		wall("w4", rect(195, 0, 200, 200)),
		wall("w5", rect(97, 5, 103, 195)),
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	for i, r := range rooms {
		assert.Equal(t, types.RoomID(i+1), r.ID)
		assert.Equal(t, types.ShapeRectangle, r.ShapeType)
		assert.GreaterOrEqual(t, r.AreaPixels, 15000)
		assert.LessOrEqual(t, r.AreaPixels, 20000)
		assertBoundingBoxContainsPolygon(t, r)
	}
	assert.NotEqual(t, rooms[0].Centroid.X > 100, rooms[1].Centroid.X > 100)
}

// Scenario 3: a half-height inner wall fails to separate the two rooms, so
// they merge into one -- the system cannot invent missing walls.
func TestExtractRooms_MissingWallSegmentMerges(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}
	walls := []types.Wall{
		wall("w1", rect(0, 0, 200, 5)),
		wall("w2", rect(0, 195, 200, 200)),
		wall("w3", rect(0, 0, 5, 200)),
		wall("w4", rect(195, 0, 200, 200)),
		wall("w5", rect(97, 5, 103, 100)),
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
}

// Scenario 4: empty wall list collapses to one giant component filtered by
// the upper area bound.
func TestExtractRooms_EmptyWalls(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, nil)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

// Scenario 5: noise-only input yields no admissible components.
func TestExtractRooms_NoiseOnly(t *testing.T) {
	canvas := types.Canvas{Width: 500, Height: 500}
	rng := rand.New(rand.NewSource(1))
	var walls []types.Wall
	for i := 0; i < 100; i++ {
		x := rng.Intn(480) + 10
		y := rng.Intn(480) + 10
		walls = append(walls, wall(types.RoomID(i), rect(x, y, x+2, y+2)))
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

// Boundary behavior (§8): a wall box with both corners outside the canvas
// is silently dropped, never an error.
func TestExtractRooms_WallOutsideCanvasDropped(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}
	walls := []types.Wall{
		wall("outside", rect(300, 300, 310, 310)),
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	rooms, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

// Determinism (§8): identical inputs produce byte-identical room sets.
func TestExtractRooms_Deterministic(t *testing.T) {
	canvas := types.Canvas{Width: 200, Height: 200}
	walls := []types.Wall{
		wall("w1", rect(0, 0, 200, 5)),
		wall("w2", rect(0, 195, 200, 200)),
		wall("w3", rect(0, 0, 5, 200)),
		wall("w4", rect(195, 0, 200, 200)),
		wall("w5", rect(97, 5, 103, 195)),
	}

	ex, err := New(DefaultConfig())
	require.NoError(t, err)

	first, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)
	second, err := ex.ExtractRooms(canvas, walls)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{MinRoomArea: 10, KernelSize: 3, EpsilonFactor: 0.01})
	assert.Error(t, err)

	_, err = New(Config{MinRoomArea: 2000, KernelSize: 4, EpsilonFactor: 0.01})
	assert.Error(t, err)

	_, err = New(Config{MinRoomArea: 2000, KernelSize: 3, EpsilonFactor: 1.5})
	assert.Error(t, err)
}

func assertBoundingBoxContainsPolygon(t *testing.T, r types.Room) {
	t.Helper()
	for _, v := range r.Polygon {
		assert.True(t, r.BoundingBox.Contains(v), "vertex %v outside bounding box %v", v, r.BoundingBox)
	}
}
