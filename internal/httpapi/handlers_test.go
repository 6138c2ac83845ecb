package httpapi

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arxos/roomvision/internal/config"
	"github.com/arxos/roomvision/internal/types"
	"github.com/arxos/roomvision/pkg/detection"
	"github.com/arxos/roomvision/pkg/roomdetect"
	"github.com/arxos/roomvision/pkg/walldetect"
)

func framedPNGBase64(t *testing.T, size, thickness int) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	paint := func(x1, y1, x2, y2 int) {
		for y := y1; y < y2; y++ {
			for x := x1; x < x2; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	paint(0, 0, size, thickness)
	paint(0, size-thickness, size, size)
	paint(0, 0, thickness, size)
	paint(size-thickness, 0, size, size)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	wallModel, err := walldetect.Load("")
	require.NoError(t, err)
	roomModel, err := roomdetect.Load("")
	require.NoError(t, err)
	router := detection.NewRouter(wallModel, roomModel)
	cfg := &config.Config{RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000}}
	return NewRouter(cfg, router, wallModel, zap.NewNop())
}

func TestDetectRooms_Success(t *testing.T) {
	handler := testRouter(t)
	body, _ := json.Marshal(detectRoomsRequest{
		Image:   framedPNGBase64(t, 200, 6),
		Version: "v1",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect-rooms", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.DetectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, types.ModelV1, resp.ModelVersion)
}

func TestDetectRooms_MissingImageIsValidationError(t *testing.T) {
	handler := testRouter(t)
	body, _ := json.Marshal(detectRoomsRequest{Version: "v1"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect-rooms", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp types.DetectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, types.CodeValidationError, resp.Error.Code)
}

func TestDetectWalls_Success(t *testing.T) {
	handler := testRouter(t)
	body, _ := json.Marshal(detectWallsRequest{Image: framedPNGBase64(t, 200, 6)})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/detect-walls", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.WallDetectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, [2]int{200, 200}, resp.ImageDimensions)
}

func TestHealthz(t *testing.T) {
	handler := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
