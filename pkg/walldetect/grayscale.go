package walldetect

import "image"

// toGrayscale flattens a decoded image into a row-major luminance buffer,
// converting grayscale and alpha-channel inputs to plain intensity per §6
// ("internally converted to three-channel color" -- for edge detection
// purposes that reduces to a single luminance channel).
func toGrayscale(img image.Image) []float64 {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit-scaled channels; reduce to 8-bit luminance.
			lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 256.0
			gray[y*width+x] = lum
		}
	}
	return gray
}
