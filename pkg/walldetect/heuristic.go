package walldetect

import (
	"math"

	"github.com/arxos/roomvision/internal/types"
)

// edge is a single central-difference gradient sample. Grounded on the teacher's
// pkg/image/processor.go DetectEdges, adapted from PDF-embedded raster
// bytes to a decoded-image luminance buffer.
type edge struct {
	x, y      int
	strength  float64
	direction float64
}

// line is a cluster of nearby, similarly-oriented edges, grounded on the
// teacher's ExtractLines / createLineFromEdges.
type line struct {
	x1, y1, x2, y2 int
	length         float64
	weight         float64
}

// HeuristicInferencer is the default Inferencer: a deterministic,
// model-free wall detector built from central-difference edge detection and line
// clustering over the decoded raster, rather than a learned object
// detector.
type HeuristicInferencer struct {
	step             int
	edgeThreshold    float64
	clusterDistance  float64
	clusterAngle     float64
	minClusterPoints int
	minLineLength    float64
}

// NewHeuristicInferencer returns the inferencer with the teacher's own
// tuned constants (edge step 4, cluster distance 60px, angle tolerance
// 0.3rad, minimum cluster size 3, minimum architectural line length 100px).
func NewHeuristicInferencer() *HeuristicInferencer {
	return &HeuristicInferencer{
		step:             4,
		edgeThreshold:    20.0,
		clusterDistance:  60.0,
		clusterAngle:     0.3,
		minClusterPoints: 3,
		minLineLength:    100.0,
	}
}

// Detect implements Inferencer by running edge detection, then line
// clustering, then emitting one wall box per sufficiently long line.
// Confidence is derived from the line's average edge strength, normalized
// into [0, 1]; threshold filtering itself is left to the caller
// (walldetect.clipAndFilter), so this method may over-produce -- which is
// exactly the "permissive" behavior §4.1 expects of the wall variant.
func (h *HeuristicInferencer) Detect(gray []float64, width, height int, threshold float64) ([]types.Wall, error) {
	edges := h.detectEdges(gray, width, height)
	lines := h.extractLines(edges)

	walls := make([]types.Wall, 0, len(lines))
	for _, ln := range lines {
		if ln.length < h.minLineLength {
			continue
		}
		x1, x2 := minInt(ln.x1, ln.x2), maxInt(ln.x1, ln.x2)
		y1, y2 := minInt(ln.y1, ln.y2), maxInt(ln.y1, ln.y2)
		// A line has zero thickness on its short axis; give it a minimal
		// one-pixel-wide box on that axis so it rasterizes as a wall
		// segment rather than vanishing (§4.2 edge case: "a single pixel
		// line is rasterized as one column").
		if x2 == x1 {
			x2 = x1 + 1
		}
		if y2 == y1 {
			y2 = y1 + 1
		}
		walls = append(walls, types.Wall{
			Box:        types.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2},
			Confidence: normalizeConfidence(ln.weight),
		})
	}
	return walls, nil
}

func (h *HeuristicInferencer) detectEdges(gray []float64, width, height int) []edge {
	var edges []edge
	step := h.step
	for y := step; y < height-step; y += step {
		for x := step; x < width-step; x += step {
			right := gray[y*width+(x+step)]
			left := gray[y*width+(x-step)]
			down := gray[(y+step)*width+x]
			up := gray[(y-step)*width+x]

			gradX := (right - left) / 2.0
			gradY := (down - up) / 2.0
			magnitude := math.Sqrt(gradX*gradX + gradY*gradY)
			direction := math.Atan2(gradY, gradX)

			if magnitude > h.edgeThreshold {
				edges = append(edges, edge{x: x, y: y, strength: magnitude, direction: direction})
			}
		}
	}
	return edges
}

func (h *HeuristicInferencer) extractLines(edges []edge) []line {
	if len(edges) == 0 {
		return nil
	}

	var lines []line
	processed := make([]bool, len(edges))

	for i, e1 := range edges {
		if processed[i] {
			continue
		}
		cluster := []edge{e1}
		processed[i] = true

		for j, e2 := range edges {
			if processed[j] || i == j {
				continue
			}
			dx := float64(e2.x - e1.x)
			dy := float64(e2.y - e1.y)
			distance := math.Sqrt(dx*dx + dy*dy)

			directionDiff := math.Abs(e2.direction - e1.direction)
			if directionDiff > math.Pi {
				directionDiff = 2*math.Pi - directionDiff
			}

			if distance < h.clusterDistance && directionDiff < h.clusterAngle {
				cluster = append(cluster, e2)
				processed[j] = true
			}
		}

		if len(cluster) >= h.minClusterPoints {
			lines = append(lines, lineFromEdges(cluster))
		}
	}
	return lines
}

func lineFromEdges(edges []edge) line {
	minX, minY := edges[0].x, edges[0].y
	maxX, maxY := edges[0].x, edges[0].y
	totalStrength := 0.0
	for _, e := range edges {
		minX, maxX = minInt(minX, e.x), maxInt(maxX, e.x)
		minY, maxY = minInt(minY, e.y), maxInt(maxY, e.y)
		totalStrength += e.strength
	}
	dx, dy := float64(maxX-minX), float64(maxY-minY)
	return line{
		x1: minX, y1: minY, x2: maxX, y2: maxY,
		length: math.Sqrt(dx*dx + dy*dy),
		weight: totalStrength / float64(len(edges)),
	}
}

// normalizeConfidence maps a raw average gradient-magnitude weight onto
// [0, 1]. 180 is a practical ceiling for an 8-bit luminance gradient response
// at this detector's step size; weights above it saturate to 1.0.
func normalizeConfidence(weight float64) float64 {
	const ceiling = 180.0
	c := weight / ceiling
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
