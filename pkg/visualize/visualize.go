// Package visualize implements component E: render rooms onto the
// original raster (or a blank canvas when there is no original) and emit a
// base64 PNG. The visualizer is deterministic but purely cosmetic --
// omitting it must never change `rooms` (spec §4.5).
package visualize

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/arxos/roomvision/internal/types"
)

// Palette is the fixed six-color cycle of §4.5.
var Palette = [6]color.RGBA{
	{R: 231, G: 76, B: 60, A: 255},  // red
	{R: 52, G: 152, B: 219, A: 255}, // blue
	{R: 46, G: 204, B: 113, A: 255}, // green
	{R: 241, G: 196, B: 15, A: 255}, // yellow
	{R: 155, G: 89, B: 182, A: 255}, // purple
	{R: 230, G: 126, B: 34, A: 255}, // orange
}

const (
	fillAlpha = 90 // out of 255, the "semi-transparent" fill
)

// Render draws every room's filled semi-transparent polygon, solid
// outline, and a centroid-anchored label onto base (or a blank white
// canvas of the given size when base is nil), burns a top-left total-rooms
// caption, and returns the result as a base64-encoded PNG.
func Render(base image.Image, canvas types.Canvas, rooms []types.Room) (string, error) {
	dst := newCanvasImage(base, canvas)

	for i, room := range rooms {
		col := Palette[i%len(Palette)]
		fillPolygon(dst, room.Polygon, withAlpha(col, fillAlpha))
		outlinePolygon(dst, room.Polygon, col)
		drawLabel(dst, room.Centroid, room.ID)
	}
	drawLabel(dst, types.Point{X: 8, Y: 16}, fmt.Sprintf("rooms: %d", len(rooms)))

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", types.NewInternalError("failed to encode visualization", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// newCanvasImage copies base into a fresh RGBA buffer, or allocates a
// blank white canvas of the given size when base is nil (the
// convert-to-rooms endpoint has no original image, per §4.5).
func newCanvasImage(base image.Image, canvas types.Canvas) *image.RGBA {
	if base != nil {
		bounds := base.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(dst, dst.Bounds(), base, bounds.Min, draw.Src)
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, canvas.Width, canvas.Height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	return dst
}

func withAlpha(c color.RGBA, alpha uint8) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// fillPolygon rasterizes an arbitrary (possibly non-convex) simple polygon
// with an even-odd scanline fill and alpha-blends it onto dst.
func fillPolygon(dst *image.RGBA, polygon []types.Point, col color.RGBA) {
	if len(polygon) < 3 {
		return
	}
	minY, maxY := polygon[0].Y, polygon[0].Y
	for _, p := range polygon {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	bounds := dst.Bounds()
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y-1 {
		maxY = bounds.Max.Y - 1
	}

	n := len(polygon)
	for y := minY; y <= maxY; y++ {
		var xs []int
		for i := 0; i < n; i++ {
			a := polygon[i]
			b := polygon[(i+1)%n]
			if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
				t := float64(y-a.Y) / float64(b.Y-a.Y)
				x := float64(a.X) + t*float64(b.X-a.X)
				xs = append(xs, int(x+0.5))
			}
		}
		sortInts(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			blendRow(dst, xs[i], xs[i+1], y, col)
		}
	}
}

func blendRow(dst *image.RGBA, x1, x2, y int, col color.RGBA) {
	bounds := dst.Bounds()
	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	for x := x1; x < x2; x++ {
		blendPixel(dst, x, y, col)
	}
}

func blendPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}.In(dst.Bounds())) {
		return
	}
	bg := dst.RGBAAt(x, y)
	a := float64(col.A) / 255.0
	out := color.RGBA{
		R: uint8(float64(col.R)*a + float64(bg.R)*(1-a)),
		G: uint8(float64(col.G)*a + float64(bg.G)*(1-a)),
		B: uint8(float64(col.B)*a + float64(bg.B)*(1-a)),
		A: 255,
	}
	dst.SetRGBA(x, y, out)
}

// outlinePolygon draws a solid polygon outline by connecting consecutive
// vertices (and closing the last edge back to the first) with Bresenham
// line segments.
func outlinePolygon(dst *image.RGBA, polygon []types.Point, col color.RGBA) {
	n := len(polygon)
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		drawLine(dst, a, b, col)
	}
}

func drawLine(dst *image.RGBA, a, b types.Point, col color.RGBA) {
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		dst.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawLabel renders text near p using a fixed-width bitmap face, the only
// font rendering stack present anywhere in the retrieved pack.
func drawLabel(dst *image.RGBA, p types.Point, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixedPoint(p.X, p.Y),
	}
	d.DrawString(text)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
