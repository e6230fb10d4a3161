package noop

import (
	"context"
	"log"

	"docext/internal/domain"
	"docext/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs completions to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendExtractionComplete(_ context.Context, toEmail string, rec *domain.ExtractionRecord) error {
	log.Printf("[NOOP EMAIL] Extraction %s complete for %s (%s), notify %s",
		rec.ID, rec.SourceFile, rec.DocumentType, toEmail)
	return nil
}
