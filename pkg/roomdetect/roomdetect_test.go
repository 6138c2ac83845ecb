package roomdetect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framedImage(size, thickness int) image.Image {
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
	return img
}

func TestLoad_DefaultBackend(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, handle)
}

func TestLoad_MissingPathFailsModelUnavailable(t *testing.T) {
	_, err := Load("/nonexistent/model/path")
	require.Error(t, err)
}

func TestDetect_FramedSquareYieldsRooms(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)

	rooms, elapsedMs, err := handle.Detect(framedImage(200, 6), 0.10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsedMs, 0.0)
	for _, r := range rooms {
		assert.GreaterOrEqual(t, len(r.Polygon), 3)
	}
}
