package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"docext/internal/domain"
	"docext/internal/port"
)

type extractionRecordRepo struct {
	db *sqlx.DB
}

// NewExtractionRecordRepo creates a new PostgreSQL-backed
// ExtractionRecordRepository.
func NewExtractionRecordRepo(db *sqlx.DB) port.ExtractionRecordRepository {
	return &extractionRecordRepo{db: db}
}

// recordRow is the database shape of an extraction record; Fields travel
// as a JSONB column.
type recordRow struct {
	ID           uuid.UUID           `db:"id"`
	DocumentType domain.DocumentType `db:"document_type"`
	SourceFile   string              `db:"source_file"`
	Fields       []byte              `db:"fields"`
	StorageKey   string              `db:"storage_key"`
	CreatedAt    time.Time           `db:"created_at"`
}

func (row *recordRow) toDomain() (*domain.ExtractionRecord, error) {
	fields := domain.CanonicalRecord{}
	if len(row.Fields) > 0 {
		if err := json.Unmarshal(row.Fields, &fields); err != nil {
			return nil, fmt.Errorf("unmarshaling fields for record %s: %w", row.ID, err)
		}
	}
	return &domain.ExtractionRecord{
		ID:           row.ID,
		DocumentType: row.DocumentType,
		SourceFile:   row.SourceFile,
		Fields:       fields,
		StorageKey:   row.StorageKey,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (r *extractionRecordRepo) Save(ctx context.Context, rec *domain.ExtractionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return fmt.Errorf("extractionRecordRepo.Save marshal fields: %w", err)
	}

	query := `INSERT INTO extraction_records
		(id, document_type, source_file, fields, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		rec.ID, rec.DocumentType, rec.SourceFile, fieldsJSON, rec.StorageKey, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("extractionRecordRepo.Save: %w", err)
	}
	return nil
}

func (r *extractionRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error) {
	var row recordRow
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM extraction_records WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("extractionRecordRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *extractionRecordRepo) List(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM extraction_records
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("extractionRecordRepo.List: %w", err)
	}

	recs := make([]domain.ExtractionRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, nil
}
