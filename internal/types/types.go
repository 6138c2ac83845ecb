// Package types holds the data model shared by every detection component:
// walls, canvases, rooms, the request/response records of the external
// contract, and the stable error-code taxonomy of §7.
package types

import "fmt"

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned integer box in pixel coordinates with
// 0 <= X1 < X2 and 0 <= Y1 < Y2. X2 and Y2 are exclusive pixel bounds: the
// box covers pixel columns X1..X2-1 and rows Y1..Y2-1.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the box's horizontal extent in pixels.
func (r Rect) Width() int { return r.X2 - r.X1 }

// Height returns the box's vertical extent in pixels.
func (r Rect) Height() int { return r.Y2 - r.Y1 }

// Contains reports whether p lies within r, inclusive of both edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Canvas is the pixel coordinate space shared by walls and rooms within one
// invocation of the extractor.
type Canvas struct {
	Width  int
	Height int
}

// Area returns the canvas's pixel area.
func (c Canvas) Area() int { return c.Width * c.Height }

// Wall is an axis-aligned rectangular region known to contain a wall
// segment. Produced by the wall detector or supplied externally; consumed
// by the room extractor; never retained past a single request.
type Wall struct {
	ID         string  `json:"id"`
	Box        Rect    `json:"box"`
	Confidence float64 `json:"confidence"`
}

// ShapeType classifies a room polygon by its vertex count, per §3.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeLShape    ShapeType = "l_shape"
	ShapeComplex   ShapeType = "complex"
)

// ClassifyShape maps a polygon vertex count onto a ShapeType using the
// definitive band from spec §3: 4 -> rectangle, 5-8 -> l_shape, >=9 -> complex.
func ClassifyShape(numVertices int) ShapeType {
	switch {
	case numVertices == 4:
		return ShapeRectangle
	case numVertices >= 5 && numVertices <= 8:
		return ShapeLShape
	default:
		return ShapeComplex
	}
}

// ConfidenceForVertexCount implements the vertex-count confidence table of
// §4.2 step 9. This is the definitive scoring rule; the alternate
// area-blended heuristic is intentionally not implemented.
func ConfidenceForVertexCount(numVertices int) float64 {
	switch {
	case numVertices == 4:
		return 0.95
	case numVertices >= 5 && numVertices <= 6:
		return 0.85
	case numVertices >= 7 && numVertices <= 8:
		return 0.75
	default:
		return 0.65
	}
}

// Room is a maximal enclosed pixel region, represented as a simple polygon,
// with the bounding box, area, centroid, shape tag and confidence the
// extractor or direct detector computed for it.
type Room struct {
	ID          string    `json:"id"`
	Polygon     []Point   `json:"polygon"`
	BoundingBox Rect      `json:"bounding_box"`
	AreaPixels  int       `json:"area_pixels"`
	Centroid    Point     `json:"centroid"`
	Confidence  float64   `json:"confidence"`
	ShapeType   ShapeType `json:"shape_type"`
	NumVertices int       `json:"num_vertices"`
}

// RoomID formats the sequential room identifier used by both B and C:
// room_001, room_002, ... in emission order, with no gaps.
func RoomID(sequence int) string {
	return fmt.Sprintf("room_%03d", sequence)
}

// ModelVersion is the tagged variant the router dispatches on (§4.4, §9
// "polymorphism across versions").
type ModelVersion string

const (
	ModelV1 ModelVersion = "v1"
	ModelV2 ModelVersion = "v2"
)

// ImageFormat is the accepted wire image encoding (§6).
type ImageFormat string

const (
	ImagePNG  ImageFormat = "png"
	ImageJPEG ImageFormat = "jpeg"
	ImageJPG  ImageFormat = "jpg"
)

// ErrorCode is one of the stable, string-identified error kinds of §6/§7.
type ErrorCode string

const (
	CodeValidationError  ErrorCode = "ValidationError"
	CodeModelUnavailable ErrorCode = "ModelUnavailable"
	CodeDetectionError   ErrorCode = "DetectionError"
	CodeConversionError  ErrorCode = "ConversionError"
	CodeInternalError    ErrorCode = "InternalError"
)

// HTTPStatus maps an ErrorCode onto the response status class of §7.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case CodeValidationError:
		return 400
	case CodeModelUnavailable:
		return 503
	case CodeDetectionError, CodeConversionError:
		return 500
	default:
		return 500
	}
}

// DetectionError is the single domain error type every component returns.
// It carries a stable Code so callers can branch with errors.As, and wraps
// an underlying cause for %w-chained context.
type DetectionError struct {
	Code    ErrorCode
	Message string
	Details string
	Cause   error
}

func (e *DetectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DetectionError) Unwrap() error { return e.Cause }

// NewValidationError constructs a ValidationError for malformed input.
func NewValidationError(message string) *DetectionError {
	return &DetectionError{Code: CodeValidationError, Message: message}
}

// NewModelUnavailable constructs a ModelUnavailable error for the given
// model version.
func NewModelUnavailable(version ModelVersion, cause error) *DetectionError {
	return &DetectionError{
		Code:    CodeModelUnavailable,
		Message: fmt.Sprintf("model %s is not loaded", version),
		Cause:   cause,
	}
}

// NewDetectionError wraps an inference-stage failure.
func NewDetectionError(message string, cause error) *DetectionError {
	return &DetectionError{Code: CodeDetectionError, Message: message, Cause: cause}
}

// NewConversionError wraps a wall-to-room extraction failure.
func NewConversionError(message string, cause error) *DetectionError {
	return &DetectionError{Code: CodeConversionError, Message: message, Cause: cause}
}

// NewInternalError wraps anything not otherwise classified.
func NewInternalError(message string, cause error) *DetectionError {
	return &DetectionError{Code: CodeInternalError, Message: message, Cause: cause}
}

// DetectionOptions is the parsed, validated request record for the unified
// detect-rooms endpoint, replacing the source's runtime schema validation
// (§9 "Pydantic-style validation") with explicit construction.
type DetectionOptions struct {
	Version             ModelVersion
	ConfidenceThreshold float64
	MinRoomArea         int
	KernelSize          int
	EpsilonFactor       float64
	ReturnVisualization bool
	EnableRefinement    bool
	ImageFormat         ImageFormat
}

// DefaultDetectionOptions returns the configuration defaults of §6, with
// ConfidenceThreshold set per version (0.10 for v1, 0.50 for v2).
func DefaultDetectionOptions(version ModelVersion) DetectionOptions {
	threshold := 0.10
	if version == ModelV2 {
		threshold = 0.50
	}
	return DetectionOptions{
		Version:             version,
		ConfidenceThreshold: threshold,
		MinRoomArea:         2000,
		KernelSize:          3,
		EpsilonFactor:       0.01,
		ReturnVisualization: true,
		EnableRefinement:    false,
		ImageFormat:         ImagePNG,
	}
}

// Validate enforces the field ranges of §6, returning a ValidationError
// describing the first violation found.
func (o DetectionOptions) Validate() error {
	if o.Version != ModelV1 && o.Version != ModelV2 {
		return NewValidationError(fmt.Sprintf("unsupported version %q", o.Version))
	}
	if o.ConfidenceThreshold < 0 || o.ConfidenceThreshold > 1 {
		return NewValidationError("confidence_threshold must be in [0, 1]")
	}
	if o.MinRoomArea < 100 {
		return NewValidationError("min_room_area must be >= 100")
	}
	if o.KernelSize < 1 || o.KernelSize%2 == 0 {
		return NewValidationError("kernel_size must be odd and >= 1")
	}
	if o.EpsilonFactor <= 0 || o.EpsilonFactor >= 1 {
		return NewValidationError("epsilon_factor must be in (0, 1)")
	}
	return nil
}

// ValidateCanvas enforces §6's image dimension bounds: 100 <= min(W,H) and
// max(W,H) <= 4096.
func ValidateCanvas(c Canvas) error {
	minSide := c.Width
	if c.Height < minSide {
		minSide = c.Height
	}
	maxSide := c.Width
	if c.Height > maxSide {
		maxSide = c.Height
	}
	if minSide < 100 {
		return NewValidationError(fmt.Sprintf("image dimensions too small: %dx%d", c.Width, c.Height))
	}
	if maxSide > 4096 {
		return NewValidationError(fmt.Sprintf("image dimensions too large: %dx%d", c.Width, c.Height))
	}
	return nil
}

// DetectionMetadata carries the non-room fields of the unified response,
// including the v1 timing decomposition (§4.4).
type DetectionMetadata struct {
	ImageDimensions        [2]int                  `json:"image_dimensions"`
	ModelType              ModelVersion            `json:"model_type"`
	RefinementApplied      bool                    `json:"refinement_applied"`
	IntermediateDetections *IntermediateDetections `json:"intermediate_detections,omitempty"`
}

// IntermediateDetections preserves the v1 A/B timing split when the router
// sums them into the top-level processing_time_ms (§4.4).
type IntermediateDetections struct {
	WallDetectionMs float64 `json:"wall_detection_ms"`
	ExtractionMs    float64 `json:"room_extraction_ms"`
	WallCount       int     `json:"wall_count"`
}

// DetectionResponse is the unified success/failure envelope of §6's
// detect-rooms endpoint.
type DetectionResponse struct {
	Success          bool               `json:"success"`
	Rooms            []Room             `json:"rooms,omitempty"`
	TotalRooms       int                `json:"total_rooms,omitempty"`
	ProcessingTimeMs float64            `json:"processing_time_ms,omitempty"`
	ModelVersion     ModelVersion       `json:"model_version,omitempty"`
	Visualization    string             `json:"visualization,omitempty"`
	Metadata         *DetectionMetadata `json:"metadata,omitempty"`
	Error            *ErrorPayload      `json:"error,omitempty"`
}

// ErrorPayload is the failure-shape component of DetectionResponse.
type ErrorPayload struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// WallDetectionResponse is the debug-surface response of §6's detect-walls
// endpoint. image_dimensions sits at the top level here, not nested under
// metadata -- this asymmetry versus DetectionResponse is deliberate (§9.3).
type WallDetectionResponse struct {
	Walls            []Wall  `json:"walls"`
	TotalWalls       int     `json:"total_walls"`
	ImageDimensions  [2]int  `json:"image_dimensions"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
}
