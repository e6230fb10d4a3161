package port

import (
	"context"

	"docext/internal/domain"
)

// ClassifyTokensInput is the reading-ordered word sequence submitted to the
// layout model. Words and Boxes are parallel slices.
type ClassifyTokensInput struct {
	Words []string
	Boxes []domain.NormalizedBox
}

// ClassifyTokensOutput holds per-sub-word-token predictions. Sub-word tokens
// may map many-to-one onto words; label-id resolution is the model's own.
type ClassifyTokensOutput struct {
	Predictions []domain.TokenPrediction
}

// TokenClassifier abstracts the external layout-aware token-classification
// model. Inference is read-only against the loaded weights and may run
// concurrently.
type TokenClassifier interface {
	ClassifyTokens(ctx context.Context, input ClassifyTokensInput) (*ClassifyTokensOutput, error)
}
