package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
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

// Client implements port.OCREngine against the text-detection service's
// HTTP API.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewClient creates an OCR client from configuration.
func NewClient(cfg *config.OCRConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Image       string `json:"image"`
	ContentType string `json:"content_type"`
}

type detectResponse struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Detections []struct {
		Polygon    [4][2]float64 `json:"polygon"`
		Text       string        `json:"text"`
		Confidence float64       `json:"confidence"`
	} `json:"detections"`
}

// Detect submits an image and returns the raw, spatially unordered
// detections along with the image dimensions they are relative to.
func (c *Client) Detect(ctx context.Context, input port.DetectInput) (*port.DetectOutput, error) {
	reqBody := detectRequest{
		Image:       base64.StdEncoding.EncodeToString(input.Image),
		ContentType: input.ContentType,
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
		return nil, fmt.Errorf("calling OCR service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OCR service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed detectResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if parsed.Width <= 0 || parsed.Height <= 0 {
		return nil, fmt.Errorf("OCR service returned invalid dimensions %vx%v", parsed.Width, parsed.Height)
	}

	detections := make([]domain.RawDetection, 0, len(parsed.Detections))
	for _, d := range parsed.Detections {
		var poly [4]domain.Point
		for i, p := range d.Polygon {
			poly[i] = domain.Point{X: p[0], Y: p[1]}
		}
		detections = append(detections, domain.RawDetection{
			Polygon:    poly,
			Text:       d.Text,
			Confidence: d.Confidence,
		})
	}

	return &port.DetectOutput{
		Detections: detections,
		Width:      parsed.Width,
		Height:     parsed.Height,
	}, nil
}
