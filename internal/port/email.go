package port

import (
	"context"

	"docext/internal/domain"
)

// EmailSender defines the contract for outbound notification email.
type EmailSender interface {
	SendExtractionComplete(ctx context.Context, toEmail string, rec *domain.ExtractionRecord) error
}
