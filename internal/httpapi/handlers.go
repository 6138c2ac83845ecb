package httpapi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/arxos/roomvision/internal/types"
	"github.com/arxos/roomvision/pkg/detection"
	"github.com/arxos/roomvision/pkg/roomextract"
	"github.com/arxos/roomvision/pkg/visualize"
	"github.com/arxos/roomvision/pkg/walldetect"
)

// handlers owns the process-wide detector router and decodes/encodes the
// three external endpoints of spec §6.
type handlers struct {
	router *detection.Router
	wall   *walldetect.ModelHandle
	logger *zap.Logger
}

// detectRoomsRequest is the unified detect-rooms wire request.
type detectRoomsRequest struct {
	Image               string   `json:"image"`
	Version             string   `json:"version"`
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
	MinRoomArea         *int     `json:"min_room_area"`
	KernelSize          *int     `json:"kernel_size"`
	EpsilonFactor       *float64 `json:"epsilon_factor"`
	ReturnVisualization *bool    `json:"return_visualization"`
	EnableRefinement    bool     `json:"enable_refinement"`
	ImageFormat         string   `json:"image_format"`
}

func (h *handlers) detectRooms(w http.ResponseWriter, r *http.Request) {
	var req detectRoomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetectionError(w, types.NewValidationError("malformed request body"))
		return
	}

	version := types.ModelVersion(req.Version)
	if req.Version == "" {
		version = types.ModelV1
	}
	opts := types.DefaultDetectionOptions(version)
	if req.ConfidenceThreshold != nil {
		opts.ConfidenceThreshold = *req.ConfidenceThreshold
	}
	if req.MinRoomArea != nil {
		opts.MinRoomArea = *req.MinRoomArea
	}
	if req.KernelSize != nil {
		opts.KernelSize = *req.KernelSize
	}
	if req.EpsilonFactor != nil {
		opts.EpsilonFactor = *req.EpsilonFactor
	}
	if req.ReturnVisualization != nil {
		opts.ReturnVisualization = *req.ReturnVisualization
	}
	opts.EnableRefinement = req.EnableRefinement

	img, err := decodeBase64Image(req.Image)
	if err != nil {
		writeDetectionError(w, err)
		return
	}

	resp, err := h.router.Detect(img, opts)
	if err != nil {
		h.logDetectionFailure(r, err)
		writeDetectionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// detectWallsRequest is the debug-surface detect-walls wire request.
type detectWallsRequest struct {
	Image               string   `json:"image"`
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
}

func (h *handlers) detectWalls(w http.ResponseWriter, r *http.Request) {
	var req detectWallsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetectionError(w, types.NewValidationError("malformed request body"))
		return
	}

	threshold := 0.10
	if req.ConfidenceThreshold != nil {
		threshold = *req.ConfidenceThreshold
	}

	img, err := decodeBase64Image(req.Image)
	if err != nil {
		writeDetectionError(w, err)
		return
	}

	if h.wall == nil {
		writeDetectionError(w, types.NewModelUnavailable(types.ModelV1, nil))
		return
	}

	walls, elapsedMs, err := h.wall.Detect(img, threshold)
	if err != nil {
		h.logDetectionFailure(r, err)
		writeDetectionError(w, err)
		return
	}

	bounds := img.Bounds()
	resp := types.WallDetectionResponse{
		Walls:            walls,
		TotalWalls:       len(walls),
		ImageDimensions:  [2]int{bounds.Dx(), bounds.Dy()},
		ProcessingTimeMs: elapsedMs,
	}
	writeJSON(w, http.StatusOK, resp)
}

// convertToRoomsRequest exposes component B directly, taking
// already-detected walls instead of a raw image.
type convertToRoomsRequest struct {
	Walls               []types.Wall `json:"walls"`
	ImageDimensions     [2]int       `json:"image_dimensions"`
	MinRoomArea         *int         `json:"min_room_area"`
	KernelSize          *int         `json:"kernel_size"`
	EpsilonFactor       *float64     `json:"epsilon_factor"`
	ReturnVisualization bool         `json:"return_visualization"`
}

func (h *handlers) convertToRooms(w http.ResponseWriter, r *http.Request) {
	var req convertToRoomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetectionError(w, types.NewValidationError("malformed request body"))
		return
	}

	canvas := types.Canvas{Width: req.ImageDimensions[0], Height: req.ImageDimensions[1]}
	if err := types.ValidateCanvas(canvas); err != nil {
		writeDetectionError(w, err)
		return
	}

	cfg := roomextract.DefaultConfig()
	if req.MinRoomArea != nil {
		cfg.MinRoomArea = *req.MinRoomArea
	}
	if req.KernelSize != nil {
		cfg.KernelSize = *req.KernelSize
	}
	if req.EpsilonFactor != nil {
		cfg.EpsilonFactor = *req.EpsilonFactor
	}

	extractor, err := roomextract.New(cfg)
	if err != nil {
		writeDetectionError(w, err)
		return
	}

	start := time.Now()
	rooms, err := extractor.ExtractRooms(canvas, req.Walls)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		h.logDetectionFailure(r, err)
		writeDetectionError(w, err)
		return
	}

	resp := types.DetectionResponse{
		Success:          true,
		Rooms:            rooms,
		TotalRooms:       len(rooms),
		ProcessingTimeMs: elapsedMs,
		ModelVersion:     types.ModelV1,
		Metadata: &types.DetectionMetadata{
			ImageDimensions: req.ImageDimensions,
			ModelType:       types.ModelV1,
		},
	}
	if req.ReturnVisualization {
		viz, err := visualize.Render(nil, canvas, rooms)
		if err != nil {
			writeDetectionError(w, err)
			return
		}
		resp.Visualization = viz
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) logDetectionFailure(r *http.Request, err error) {
	var detErr *types.DetectionError
	if errors.As(err, &detErr) {
		h.logger.Error("detection request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.String("code", string(detErr.Code)),
			zap.String("message", detErr.Message),
		)
		return
	}
	h.logger.Error("detection request failed with unclassified error",
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestIDFromContext(r.Context())),
		zap.Error(err),
	)
}

func decodeBase64Image(encoded string) (image.Image, error) {
	if encoded == "" {
		return nil, types.NewValidationError("image is required")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, types.NewValidationError("image is not valid base64")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, types.NewValidationError("image could not be decoded as PNG or JPEG")
	}
	return img, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetectionError(w http.ResponseWriter, err error) {
	var detErr *types.DetectionError
	if !errors.As(err, &detErr) {
		detErr = types.NewInternalError("unclassified failure", err)
	}

	resp := types.DetectionResponse{
		Success: false,
		Error: &types.ErrorPayload{
			Code:    detErr.Code,
			Message: detErr.Message,
			Details: detErr.Details,
		},
	}
	writeJSON(w, detErr.Code.HTTPStatus(), resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
