package port

import (
	"context"

	"docext/internal/domain"
)

// DocumentClassifier decides whether free-form document text is a receipt,
// an invoice, or unknown.
type DocumentClassifier interface {
	ClassifyDocument(ctx context.Context, text string) (domain.DocumentType, error)
}
