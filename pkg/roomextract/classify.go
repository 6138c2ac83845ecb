package roomextract

import "github.com/arxos/roomvision/internal/types"

// classifyAndScore applies the shape-tag and confidence rules of §3/§4.2
// step 9 to a finished polygon.
func classifyAndScore(numVertices int) (types.ShapeType, float64) {
	return types.ClassifyShape(numVertices), types.ConfidenceForVertexCount(numVertices)
}
