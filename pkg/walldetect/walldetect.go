// Package walldetect implements component A: given a decoded raster and a
// confidence threshold, it emits a list of axis-aligned wall boxes plus the
// inference wall-clock time (spec §4.1).
package walldetect

import (
	"fmt"
	"image"
	"os"
	"time"

	"github.com/arxos/roomvision/internal/types"
)

// wallID formats a wall identifier, numbered in emission order -- walls
// are unique only within a single run (§3), unlike rooms they follow no
// wire-stable naming contract beyond that.
func wallID(sequence int) string {
	return fmt.Sprintf("wall_%03d", sequence)
}

// Inferencer is the pluggable detection backend behind a ModelHandle. The
// contract is deliberately narrow so a real learned-model backend (ONNX
// runtime, a native detector library) can be swapped in later behind a
// build tag without touching callers.
type Inferencer interface {
	Detect(gray []float64, width, height int, threshold float64) ([]types.Wall, error)
}

// ModelHandle is the process-scoped, read-only detector handle of §5: built
// once at boot via Load and shared across every request the process
// serves.
type ModelHandle struct {
	inferencer Inferencer
	modelPath  string
}

// Load constructs a ModelHandle, executed once per process per §4.1. An
// empty modelPath selects the shipped deterministic heuristic inferencer.
// A non-empty path that cannot be read fails with ModelUnavailable --
// trained detector weights are out of scope for this repository (spec §1),
// so no path ever successfully loads a learned model today, but the
// failure mode the contract requires is still honored.
func Load(modelPath string) (*ModelHandle, error) {
	if modelPath != "" {
		if _, err := os.Stat(modelPath); err != nil {
			return nil, types.NewModelUnavailable(types.ModelV1, err)
		}
	}
	return &ModelHandle{inferencer: NewHeuristicInferencer(), modelPath: modelPath}, nil
}

// Detect implements detect(image, threshold) -> (walls, elapsed_ms) of
// §4.1: pure with respect to the loaded model, coordinates clipped to the
// image's pixel domain, confidence below threshold never appears in the
// output. A zero-wall result is not an error.
func (h *ModelHandle) Detect(img image.Image, threshold float64) ([]types.Wall, float64, error) {
	start := time.Now()

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := toGrayscale(img)

	walls, err := h.inferencer.Detect(gray, width, height, threshold)
	elapsedMs := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		return nil, elapsedMs, types.NewDetectionError("wall detection failed", err)
	}

	canvas := types.Canvas{Width: width, Height: height}
	filtered := clipAndFilter(walls, canvas, threshold)
	for i := range filtered {
		filtered[i].ID = wallID(i + 1)
	}
	return filtered, elapsedMs, nil
}

// clipAndFilter enforces the coordinate-clipping and confidence-threshold
// rules of §4.1's contract, regardless of what an Inferencer implementation
// already did.
func clipAndFilter(walls []types.Wall, canvas types.Canvas, threshold float64) []types.Wall {
	out := make([]types.Wall, 0, len(walls))
	for _, w := range walls {
		if w.Confidence < threshold {
			continue
		}
		box := w.Box
		box.X1 = clampInt(box.X1, 0, canvas.Width)
		box.X2 = clampInt(box.X2, 0, canvas.Width)
		box.Y1 = clampInt(box.Y1, 0, canvas.Height)
		box.Y2 = clampInt(box.Y2, 0, canvas.Height)
		if box.X1 >= box.X2 || box.Y1 >= box.Y2 {
			continue
		}
		w.Box = box
		out = append(out, w)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
