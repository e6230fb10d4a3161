package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docext/internal/classifier"
	"docext/internal/config"
	"docext/internal/domain"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	defaultTimeout = 15 * time.Second
)

// Classifier implements port.DocumentClassifier against Google's Gemini API.
type Classifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewClassifier creates a Gemini-backed document classifier.
func NewClassifier(cfg *config.RemoteClassifierConfig) *Classifier {
	return newClassifier(cfg, "")
}

// NewClassifierWithEndpoint creates a classifier pointing at a custom API
// endpoint (for testing).
func NewClassifierWithEndpoint(cfg *config.RemoteClassifierConfig, endpoint string) *Classifier {
	return newClassifier(cfg, endpoint)
}

func newClassifier(cfg *config.RemoteClassifierConfig, endpoint string) *Classifier {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Classifier{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// ClassifyDocument sends the document text with the classification prompt
// and parses the label out of the response. Any transport, status, or parse
// failure is returned as an error so the caller can fall back.
func (c *Classifier) ClassifyDocument(ctx context.Context, text string) (domain.DocumentType, error) {
	prompt := classifier.BuildClassificationPrompt(text)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": 8,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	return classifier.ParseLabel(respBody)
}
