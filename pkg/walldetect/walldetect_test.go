package walldetect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// renderFramedSquare draws a white canvas with a black rectangular frame,
// giving the gradient-based heuristic clear axis-aligned gradients to find.
func renderFramedSquare(size, thickness int) image.Image {
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

func TestLoad_EmptyPathUsesHeuristicDefault(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, handle)
}

func TestLoad_MissingPathFailsModelUnavailable(t *testing.T) {
	_, err := Load("/nonexistent/model/weights.bin")
	require.Error(t, err)
}

func TestDetect_FramedSquareYieldsWalls(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)

	img := renderFramedSquare(300, 6)
	walls, elapsedMs, err := handle.Detect(img, 0.0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsedMs, 0.0)
	assert.NotEmpty(t, walls)

	for _, w := range walls {
		assert.GreaterOrEqual(t, w.Box.X1, 0)
		assert.GreaterOrEqual(t, w.Box.Y1, 0)
		assert.LessOrEqual(t, w.Box.X2, 300)
		assert.LessOrEqual(t, w.Box.Y2, 300)
		assert.Less(t, w.Box.X1, w.Box.X2)
		assert.Less(t, w.Box.Y1, w.Box.Y2)
	}
}

func TestDetect_ThresholdFiltersLowConfidenceWalls(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)

	img := renderFramedSquare(300, 6)
	permissive, _, err := handle.Detect(img, 0.0)
	require.NoError(t, err)
	strict, _, err := handle.Detect(img, 0.99)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, len(permissive), len(strict))
}

func TestDetect_BlankImageYieldsNoWalls(t *testing.T) {
	handle, err := Load("")
	require.NoError(t, err)

	blank := image.NewGray(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			blank.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	walls, _, err := handle.Detect(blank, 0.10)
	require.NoError(t, err)
	assert.Empty(t, walls)
}
