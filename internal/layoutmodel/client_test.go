package layoutmodel_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docext/internal/config"
	"docext/internal/domain"
	"docext/internal/layoutmodel"
	"docext/internal/port"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *layoutmodel.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return layoutmodel.NewClient(&config.LayoutConfig{
		Endpoint:     server.URL,
		MaxSeqLength: 512,
	})
}

func TestClassifyTokensRoundTrip(t *testing.T) {
	var gotReq struct {
		Words        []string `json:"words"`
		Boxes        [][4]int `json:"boxes"`
		MaxSeqLength int      `json:"max_seq_length"`
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))
		_, _ = w.Write([]byte(`{
			"predictions": [
				{"word_index": -1, "label": "O"},
				{"word_index": 0, "label": "B-TOTAL"},
				{"word_index": 0, "label": "I-TOTAL"},
				{"word_index": 1, "label": "O"}
			]
		}`))
	})

	out, err := c.ClassifyTokens(context.Background(), port.ClassifyTokensInput{
		Words: []string{"Total", "$10.80"},
		Boxes: []domain.NormalizedBox{
			{X1: 10, Y1: 20, X2: 110, Y2: 50},
			{X1: 120, Y1: 20, X2: 200, Y2: 50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Total", "$10.80"}, gotReq.Words)
	assert.Equal(t, [][4]int{{10, 20, 110, 50}, {120, 20, 200, 50}}, gotReq.Boxes)
	assert.Equal(t, 512, gotReq.MaxSeqLength)

	require.Len(t, out.Predictions, 4)
	assert.Equal(t, -1, out.Predictions[0].WordIndex)
	assert.Equal(t, "B-TOTAL", out.Predictions[1].Label)
}

func TestClassifyTokensLengthMismatch(t *testing.T) {
	c := layoutmodel.NewClient(&config.LayoutConfig{Endpoint: "http://localhost:0"})

	_, err := c.ClassifyTokens(context.Background(), port.ClassifyTokensInput{
		Words: []string{"a", "b"},
		Boxes: []domain.NormalizedBox{{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestClassifyTokensErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "model loading"}`))
	})

	_, err := c.ClassifyTokens(context.Background(), port.ClassifyTokensInput{
		Words: []string{"a"},
		Boxes: []domain.NormalizedBox{{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
