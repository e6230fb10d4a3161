package geometry

import (
	"math"

	"docext/internal/domain"
)

// layoutScale is the size of the layout model's square coordinate space.
const layoutScale = 1000

// NormalizeBox rescales a pixel box into the model's [0,1000] space:
// round(1000*coord/dim), clamped. The transform is monotonic, so box
// ordering survives normalization.
func NormalizeBox(b domain.BoundingBox, width, height float64) domain.NormalizedBox {
	return domain.NormalizedBox{
		X1: normCoord(b.X1, width),
		Y1: normCoord(b.Y1, height),
		X2: normCoord(b.X2, width),
		Y2: normCoord(b.Y2, height),
	}
}

// NormalizeBoxes maps every token's box, preserving order.
func NormalizeBoxes(tokens []domain.WordToken, width, height float64) []domain.NormalizedBox {
	out := make([]domain.NormalizedBox, len(tokens))
	for i, t := range tokens {
		out[i] = NormalizeBox(t.Box, width, height)
	}
	return out
}

func normCoord(v, dim float64) int {
	if dim <= 0 {
		return 0
	}
	n := int(math.Round(layoutScale * v / dim))
	if n < 0 {
		return 0
	}
	if n > layoutScale {
		return layoutScale
	}
	return n
}
