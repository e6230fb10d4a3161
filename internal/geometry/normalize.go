// Package geometry reconstructs a human reading order from the spatially
// unordered text detections an OCR engine produces, and maps pixel boxes into
// the layout model's normalized coordinate space.
package geometry

import "docext/internal/domain"

// BoxFromPolygon derives the axis-aligned bounding box of a detection
// polygon, clipped to [0,width]x[0,height].
func BoxFromPolygon(poly [4]domain.Point, width, height float64) domain.BoundingBox {
	minX, maxX := poly[0].X, poly[0].X
	minY, maxY := poly[0].Y, poly[0].Y
	for _, p := range poly[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return domain.BoundingBox{
		X1: clampF(minX, 0, width),
		Y1: clampF(minY, 0, height),
		X2: clampF(maxX, 0, width),
		Y2: clampF(maxY, 0, height),
	}
}

// FilterDetections drops detections with empty text or confidence below
// threshold and converts the survivors into word tokens, preserving
// discovery order. An empty result is a valid "no legible text" outcome,
// not an error.
func FilterDetections(dets []domain.RawDetection, width, height, confThreshold float64) []domain.WordToken {
	tokens := make([]domain.WordToken, 0, len(dets))
	for _, d := range dets {
		if d.Text == "" || d.Confidence < confThreshold {
			continue
		}
		tokens = append(tokens, domain.WordToken{
			Text: d.Text,
			Box:  BoxFromPolygon(d.Polygon, width, height),
		})
	}
	return tokens
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
