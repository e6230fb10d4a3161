package port

import (
	"context"

	"github.com/google/uuid"

	"docext/internal/domain"
)

// ExtractionRecordRepository persists canonical extraction results.
type ExtractionRecordRepository interface {
	Save(ctx context.Context, rec *domain.ExtractionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, error)
}
