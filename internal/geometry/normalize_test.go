package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docext/internal/domain"
	"docext/internal/geometry"
)

func poly(x1, y1, x2, y2 float64) [4]domain.Point {
	return [4]domain.Point{
		{X: x1, Y: y1},
		{X: x2, Y: y1},
		{X: x2, Y: y2},
		{X: x1, Y: y2},
	}
}

func TestBoxFromPolygon_MinMaxCorners(t *testing.T) {
	// rotated quad: min/max over corners, not first/last
	p := [4]domain.Point{
		{X: 30, Y: 10},
		{X: 90, Y: 25},
		{X: 80, Y: 60},
		{X: 20, Y: 45},
	}
	b := geometry.BoxFromPolygon(p, 200, 200)
	assert.Equal(t, domain.BoundingBox{X1: 20, Y1: 10, X2: 90, Y2: 60}, b)
}

func TestBoxFromPolygon_ClipsToImageBounds(t *testing.T) {
	p := poly(-15, -5, 250, 120)
	b := geometry.BoxFromPolygon(p, 200, 100)
	assert.Equal(t, domain.BoundingBox{X1: 0, Y1: 0, X2: 200, Y2: 100}, b)
}

func TestFilterDetections_DropsLowConfidenceAndEmptyText(t *testing.T) {
	dets := []domain.RawDetection{
		{Polygon: poly(0, 0, 10, 10), Text: "keep", Confidence: 0.9},
		{Polygon: poly(0, 20, 10, 30), Text: "", Confidence: 0.99},
		{Polygon: poly(0, 40, 10, 50), Text: "faint", Confidence: 0.2},
		{Polygon: poly(0, 60, 10, 70), Text: "borderline", Confidence: 0.35},
	}

	tokens := geometry.FilterDetections(dets, 100, 100, 0.35)

	require.Len(t, tokens, 2)
	assert.Equal(t, "keep", tokens[0].Text)
	assert.Equal(t, "borderline", tokens[1].Text)
}

func TestFilterDetections_EmptyInputIsValid(t *testing.T) {
	tokens := geometry.FilterDetections(nil, 100, 100, 0.35)
	assert.Empty(t, tokens)

	// all filtered away is equally valid, not an error
	dets := []domain.RawDetection{{Polygon: poly(0, 0, 5, 5), Text: "x", Confidence: 0.01}}
	assert.Empty(t, geometry.FilterDetections(dets, 100, 100, 0.35))
}
