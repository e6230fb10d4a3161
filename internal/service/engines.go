package service

import (
	"sync"

	"docext/internal/port"
)

// EngineProvider hands out the OCR engine and layout-model handles, creating
// each lazily on first use, at most once per process. A failed creation is
// sticky: the same error is returned on every subsequent call without
// retrying, so each request fails fast into the empty-record path.
type EngineProvider struct {
	newOCR    func() (port.OCREngine, error)
	newLayout func() (port.TokenClassifier, error)

	ocrOnce sync.Once
	ocr     port.OCREngine
	ocrErr  error

	layoutOnce sync.Once
	layout     port.TokenClassifier
	layoutErr  error
}

// NewEngineProvider creates an EngineProvider from the given constructors.
func NewEngineProvider(
	newOCR func() (port.OCREngine, error),
	newLayout func() (port.TokenClassifier, error),
) *EngineProvider {
	return &EngineProvider{newOCR: newOCR, newLayout: newLayout}
}

// OCR returns the shared OCR engine handle.
func (p *EngineProvider) OCR() (port.OCREngine, error) {
	p.ocrOnce.Do(func() {
		p.ocr, p.ocrErr = p.newOCR()
	})
	return p.ocr, p.ocrErr
}

// TokenClassifier returns the shared layout-model handle.
func (p *EngineProvider) TokenClassifier() (port.TokenClassifier, error) {
	p.layoutOnce.Do(func() {
		p.layout, p.layoutErr = p.newLayout()
	})
	return p.layout, p.layoutErr
}
