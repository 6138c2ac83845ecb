// Package detection implements component D: the single point of choice
// between the v1 (A+B) and v2 (C) pipelines, normalizing both to one room
// record shape (spec §4.4).
package detection

import (
	"image"
	"time"

	"github.com/arxos/roomvision/internal/types"
	"github.com/arxos/roomvision/pkg/roomdetect"
	"github.com/arxos/roomvision/pkg/roomextract"
	"github.com/arxos/roomvision/pkg/visualize"
	"github.com/arxos/roomvision/pkg/walldetect"
)

// Router is the tagged-variant dispatcher of §9's "polymorphism across
// versions" note: each arm owns its own detector handle, and adding a v3
// means adding a case, not editing callers.
type Router struct {
	wallModel *walldetect.ModelHandle
	roomModel *roomdetect.ModelHandle
}

// NewRouter builds a Router from whichever process-scoped model handles
// successfully loaded at boot. Either handle may be nil: per §4.4, "if the
// selected version's model is unavailable at startup, the router still
// accepts requests for the other version."
func NewRouter(wallModel *walldetect.ModelHandle, roomModel *roomdetect.ModelHandle) *Router {
	return &Router{wallModel: wallModel, roomModel: roomModel}
}

// Detect implements detect(image, options) -> DetectionResponse.
func (r *Router) Detect(img image.Image, opts types.DetectionOptions) (types.DetectionResponse, error) {
	if err := opts.Validate(); err != nil {
		return types.DetectionResponse{}, err
	}

	bounds := img.Bounds()
	canvas := types.Canvas{Width: bounds.Dx(), Height: bounds.Dy()}
	if err := types.ValidateCanvas(canvas); err != nil {
		return types.DetectionResponse{}, err
	}

	switch opts.Version {
	case types.ModelV1:
		return r.detectV1(img, canvas, opts)
	case types.ModelV2:
		return r.detectV2(img, canvas, opts)
	default:
		return types.DetectionResponse{}, types.NewValidationError("unsupported version")
	}
}

func (r *Router) detectV1(img image.Image, canvas types.Canvas, opts types.DetectionOptions) (types.DetectionResponse, error) {
	if r.wallModel == nil {
		return types.DetectionResponse{}, types.NewModelUnavailable(types.ModelV1, nil)
	}

	walls, wallMs, err := r.wallModel.Detect(img, opts.ConfidenceThreshold)
	if err != nil {
		return types.DetectionResponse{}, err
	}

	extractor, err := roomextract.New(roomextract.Config{
		MinRoomArea:   opts.MinRoomArea,
		KernelSize:    opts.KernelSize,
		EpsilonFactor: opts.EpsilonFactor,
	})
	if err != nil {
		return types.DetectionResponse{}, err
	}

	extractStart := time.Now()
	rooms, err := extractor.ExtractRooms(canvas, walls)
	extractMs := float64(time.Since(extractStart).Microseconds()) / 1000.0
	if err != nil {
		return types.DetectionResponse{}, err
	}

	// processing_time_ms on v1 is the sum of A and B timings (§4.4); the
	// decomposition is preserved in metadata.
	resp := types.DetectionResponse{
		Success:          true,
		Rooms:            rooms,
		TotalRooms:       len(rooms),
		ProcessingTimeMs: wallMs + extractMs,
		ModelVersion:     types.ModelV1,
		Metadata: &types.DetectionMetadata{
			ImageDimensions:   [2]int{canvas.Width, canvas.Height},
			ModelType:         types.ModelV1,
			RefinementApplied: false,
			IntermediateDetections: &types.IntermediateDetections{
				WallDetectionMs: wallMs,
				ExtractionMs:    extractMs,
				WallCount:       len(walls),
			},
		},
	}

	if opts.ReturnVisualization {
		viz, err := visualize.Render(img, canvas, rooms)
		if err != nil {
			return types.DetectionResponse{}, err
		}
		resp.Visualization = viz
	}
	return resp, nil
}

func (r *Router) detectV2(img image.Image, canvas types.Canvas, opts types.DetectionOptions) (types.DetectionResponse, error) {
	if r.roomModel == nil {
		return types.DetectionResponse{}, types.NewModelUnavailable(types.ModelV2, nil)
	}

	rooms, elapsedMs, err := r.roomModel.Detect(img, opts.ConfidenceThreshold)
	if err != nil {
		return types.DetectionResponse{}, err
	}

	resp := types.DetectionResponse{
		Success:          true,
		Rooms:            rooms,
		TotalRooms:       len(rooms),
		ProcessingTimeMs: elapsedMs,
		ModelVersion:     types.ModelV2,
		Metadata: &types.DetectionMetadata{
			ImageDimensions: [2]int{canvas.Width, canvas.Height},
			ModelType:       types.ModelV2,
			// enable_refinement is accepted and recorded for caller
			// transparency; no second-pass refinement model exists in this
			// repository (§1 excludes trained detector weights), so it
			// never changes `rooms`.
			RefinementApplied: opts.EnableRefinement,
		},
	}

	if opts.ReturnVisualization {
		viz, err := visualize.Render(img, canvas, rooms)
		if err != nil {
			return types.DetectionResponse{}, err
		}
		resp.Visualization = viz
	}
	return resp, nil
}
