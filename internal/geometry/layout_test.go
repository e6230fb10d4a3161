package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docext/internal/domain"
	"docext/internal/geometry"
)

func TestNormalizeBox_ScalesAndRounds(t *testing.T) {
	b := domain.BoundingBox{X1: 100, Y1: 50, X2: 300, Y2: 149}
	n := geometry.NormalizeBox(b, 1000, 1000)
	assert.Equal(t, domain.NormalizedBox{X1: 100, Y1: 50, X2: 300, Y2: 149}, n)

	// 149/200 * 1000 = 745, 100.4 rounds to 100
	n = geometry.NormalizeBox(domain.BoundingBox{X1: 20.08, Y1: 0, X2: 149, Y2: 200}, 200, 200)
	assert.Equal(t, domain.NormalizedBox{X1: 100, Y1: 0, X2: 745, Y2: 1000}, n)
}

func TestNormalizeBox_BoundsHold(t *testing.T) {
	cases := []domain.BoundingBox{
		{X1: 0, Y1: 0, X2: 640, Y2: 480},
		{X1: 639.6, Y1: 479.9, X2: 640, Y2: 480},
		{X1: 1, Y1: 1, X2: 2, Y2: 2},
	}
	for _, b := range cases {
		n := geometry.NormalizeBox(b, 640, 480)
		for _, v := range []int{n.X1, n.Y1, n.X2, n.Y2} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 1000)
		}
	}
}

func TestNormalizeBox_Monotonic(t *testing.T) {
	a := geometry.NormalizeBox(domain.BoundingBox{X1: 10, Y1: 10, X2: 50, Y2: 20}, 640, 480)
	b := geometry.NormalizeBox(domain.BoundingBox{X1: 60, Y1: 10, X2: 110, Y2: 20}, 640, 480)
	assert.LessOrEqual(t, a.X1, b.X1)
	assert.LessOrEqual(t, a.X2, b.X2)
}

func TestNormalizeBoxes_PreservesOrder(t *testing.T) {
	tokens := []domain.WordToken{
		{Text: "a", Box: domain.BoundingBox{X1: 0, Y1: 0, X2: 10, Y2: 10}},
		{Text: "b", Box: domain.BoundingBox{X1: 20, Y1: 0, X2: 30, Y2: 10}},
	}
	boxes := geometry.NormalizeBoxes(tokens, 100, 100)
	assert.Len(t, boxes, 2)
	assert.Equal(t, 0, boxes[0].X1)
	assert.Equal(t, 200, boxes[1].X1)
}

func TestNormalizeBox_ZeroDimension(t *testing.T) {
	n := geometry.NormalizeBox(domain.BoundingBox{X1: 5, Y1: 5, X2: 10, Y2: 10}, 0, 0)
	assert.Equal(t, domain.NormalizedBox{}, n)
}
