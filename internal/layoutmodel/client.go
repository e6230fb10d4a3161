package layoutmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docext/internal/config"
	"docext/internal/domain"
	"docext/internal/port"
)

const defaultTimeout = 60 * time.Second

// Client implements port.TokenClassifier against the layout model's
// inference HTTP API.
type Client struct {
	endpoint     string
	apiKey       string
	maxSeqLength int
	client       *http.Client
}

// NewClient creates a layout-model client from configuration.
func NewClient(cfg *config.LayoutConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		apiKey:       cfg.APIKey,
		maxSeqLength: cfg.MaxSeqLength,
		client:       &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Words        []string `json:"words"`
	Boxes        [][4]int `json:"boxes"`
	MaxSeqLength int      `json:"max_seq_length,omitempty"`
}

type classifyResponse struct {
	Predictions []struct {
		WordIndex int    `json:"word_index"`
		Label     string `json:"label"`
	} `json:"predictions"`
}

// ClassifyTokens submits the reading-ordered words with their normalized
// boxes and returns the model's per-sub-word-token predictions. The model
// tokenizes internally, so predictions may outnumber words; alignment is
// the caller's concern.
func (c *Client) ClassifyTokens(ctx context.Context, input port.ClassifyTokensInput) (*port.ClassifyTokensOutput, error) {
	if len(input.Words) != len(input.Boxes) {
		return nil, fmt.Errorf("words and boxes length mismatch: %d vs %d", len(input.Words), len(input.Boxes))
	}

	boxes := make([][4]int, len(input.Boxes))
	for i, b := range input.Boxes {
		boxes[i] = [4]int{b.X1, b.Y1, b.X2, b.Y2}
	}

	reqBody := classifyRequest{
		Words:        input.Words,
		Boxes:        boxes,
		MaxSeqLength: c.maxSeqLength,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling layout model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("layout model error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed classifyResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	predictions := make([]domain.TokenPrediction, 0, len(parsed.Predictions))
	for _, p := range parsed.Predictions {
		predictions = append(predictions, domain.TokenPrediction{
			WordIndex: p.WordIndex,
			Label:     p.Label,
		})
	}

	return &port.ClassifyTokensOutput{Predictions: predictions}, nil
}
