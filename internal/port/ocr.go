package port

import (
	"context"

	"docext/internal/domain"
)

// DetectInput carries the image handed to the OCR engine.
type DetectInput struct {
	Image       []byte
	ContentType string
}

// DetectOutput is the OCR engine's result: spatially unordered text
// detections plus the image dimensions they are relative to.
type DetectOutput struct {
	Detections []domain.RawDetection
	Width      float64
	Height     float64
}

// OCREngine abstracts the external OCR engine.
type OCREngine interface {
	Detect(ctx context.Context, input DetectInput) (*DetectOutput, error)
}
