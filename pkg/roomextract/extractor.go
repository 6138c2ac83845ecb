package roomextract

import (
	"github.com/arxos/roomvision/internal/types"
)

// Config holds the Room Extractor's tunable knobs (§4.2 inputs).
type Config struct {
	MinRoomArea   int
	KernelSize    int
	EpsilonFactor float64
}

// DefaultConfig returns the extractor defaults of §4.2/§6: A_min=2000,
// k=3, epsilon_factor=0.01.
func DefaultConfig() Config {
	return Config{MinRoomArea: 2000, KernelSize: 3, EpsilonFactor: 0.01}
}

// Extractor runs the wall-boxes-plus-canvas-size to room-polygons pipeline
// of §4.2. It holds no state across calls; every call is independently
// deterministic for identical inputs.
type Extractor struct {
	config Config
}

// New constructs an Extractor with the given configuration, validating the
// knobs the way the teacher's Builder constructors validate ParseConfig.
func New(config Config) (*Extractor, error) {
	if config.MinRoomArea < 100 {
		return nil, types.NewValidationError("min_room_area must be >= 100")
	}
	if config.KernelSize < 1 || config.KernelSize%2 == 0 {
		return nil, types.NewValidationError("kernel_size must be odd and >= 1")
	}
	if config.EpsilonFactor <= 0 || config.EpsilonFactor >= 1 {
		return nil, types.NewValidationError("epsilon_factor must be in (0, 1)")
	}
	return &Extractor{config: config}, nil
}

// ExtractRooms implements the full ten-step algorithm of §4.2. Extractor
// failures are internal programming errors (malformed canvas); there is no
// partial-success mode -- all rooms or none.
func (e *Extractor) ExtractRooms(canvas types.Canvas, walls []types.Wall) ([]types.Room, error) {
	if canvas.Width < 100 || canvas.Height < 100 {
		return nil, types.NewConversionError("canvas must be at least 100x100", nil)
	}

	raster := rasterizeWalls(canvas, walls)
	cleaned := closeThenOpen(raster, e.config.KernelSize)
	components := labelComponents(cleaned)

	maxArea := int(0.9 * float64(canvas.Area()))
	var kept []component
	for _, c := range components {
		if c.area < e.config.MinRoomArea {
			continue // noise
		}
		if c.area > maxArea {
			continue // the exterior surrounding the whole floor plan
		}
		kept = append(kept, c)
	}

	// kept preserves labelComponents' row-major first-touch order (§4.2 step
	// 10): the filtering loop above only removes entries, it never reorders
	// them, so no further sort is applied here.
	rooms := make([]types.Room, 0, len(kept))
	sequence := 0
	for _, c := range kept {
		contour := traceOuterContour(c)
		if len(contour) < 3 {
			continue // degenerate contour: skip silently, do not raise
		}
		polygon := simplifyPolygon(contour, e.config.EpsilonFactor)
		if len(polygon) < 3 {
			continue
		}

		sequence++
		shape, confidence := classifyAndScore(len(polygon))
		rooms = append(rooms, types.Room{
			ID:          types.RoomID(sequence),
			Polygon:     polygon,
			BoundingBox: c.boundingBox,
			AreaPixels:  c.area,
			Centroid:    c.centroid,
			Confidence:  confidence,
			ShapeType:   shape,
			NumVertices: len(polygon),
		})
	}

	return rooms, nil
}
