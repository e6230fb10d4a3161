package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"docext/internal/config"
	"docext/internal/domain"
	"docext/internal/fields"
	"docext/internal/geometry"
	"docext/internal/labels"
	"docext/internal/port"
)

// ExtractUploadInput is the DTO for document upload requests.
type ExtractUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ExtractionResult is the outcome of running the pipeline on one image.
type ExtractionResult struct {
	DocumentType domain.DocumentType
	Fields       domain.CanonicalRecord
	Text         string
}

// ExtractionService defines the document extraction contract.
type ExtractionService interface {
	Extract(ctx context.Context, image []byte, contentType string) (*ExtractionResult, error)
	ExtractFromUpload(ctx context.Context, input ExtractUploadInput) (*domain.ExtractionRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error)
	ListRecords(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, error)
}

type extractionService struct {
	engines    *EngineProvider
	classifier port.DocumentClassifier
	recordRepo port.ExtractionRecordRepository
	storage    port.ObjectStorage
	email      port.EmailSender
	cfg        *config.Config
}

// NewExtractionService creates a new ExtractionService implementation.
func NewExtractionService(
	engines *EngineProvider,
	classifier port.DocumentClassifier,
	recordRepo port.ExtractionRecordRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg *config.Config,
) ExtractionService {
	return &extractionService{
		engines:    engines,
		classifier: classifier,
		recordRepo: recordRepo,
		storage:    storage,
		email:      email,
		cfg:        cfg,
	}
}

// Extract runs the full pipeline: OCR, document-type classification,
// confidence filtering, reading-order reconstruction, token classification,
// and field mapping. Engine failures degrade rather than error: an
// unavailable engine yields an all-empty record, a failed model inference
// falls back to regex extraction over the ordered text.
func (s *extractionService) Extract(ctx context.Context, image []byte, contentType string) (*ExtractionResult, error) {
	engine, err := s.engines.OCR()
	if err != nil {
		log.Printf("extractionService.Extract: OCR engine unavailable: %v", err)
		return emptyResult(domain.DocumentTypeUnknown, ""), nil
	}

	detected, err := engine.Detect(ctx, port.DetectInput{Image: image, ContentType: contentType})
	if err != nil {
		log.Printf("extractionService.Extract: OCR detection failed: %v", err)
		return emptyResult(domain.DocumentTypeUnknown, ""), nil
	}

	// Document-type classification reads every legible detection, before
	// the per-type confidence threshold is known.
	allTokens := geometry.FilterDetections(detected.Detections, detected.Width, detected.Height, 0)
	classText := geometry.Text(geometry.ReadingOrder(allTokens, detected.Height, s.cfg.Extraction.LineTolerance))

	docType, err := s.classifier.ClassifyDocument(ctx, classText)
	if err != nil {
		log.Printf("extractionService.Extract: classification failed: %v", err)
		docType = domain.DocumentTypeUnknown
	}

	tokens := geometry.FilterDetections(detected.Detections, detected.Width, detected.Height, s.confThreshold(docType))
	if len(tokens) == 0 {
		log.Printf("extractionService.Extract: no legible text above threshold, returning empty %s record", docType)
		return emptyResult(docType, classText), nil
	}

	lines := geometry.ReadingOrder(tokens, detected.Height, s.cfg.Extraction.LineTolerance)
	ordered := geometry.Flatten(lines)
	boxes := geometry.NormalizeBoxes(ordered, detected.Width, detected.Height)
	words := make([]string, len(ordered))
	for i, tok := range ordered {
		words[i] = tok.Text
	}

	record, err := s.inferFields(ctx, docType, ordered, words, boxes)
	if err != nil {
		log.Printf("extractionService.Extract: model inference failed, using regex fallback: %v", err)
		record = fields.RegexExtract(geometry.Text(lines), docType)
	}

	return &ExtractionResult{
		DocumentType: docType,
		Fields:       record,
		Text:         classText,
	}, nil
}

// inferFields runs the layout model over the ordered words and maps the
// predictions to a canonical record.
func (s *extractionService) inferFields(
	ctx context.Context,
	docType domain.DocumentType,
	ordered []domain.WordToken,
	words []string,
	boxes []domain.NormalizedBox,
) (domain.CanonicalRecord, error) {
	model, err := s.engines.TokenClassifier()
	if err != nil {
		return nil, fmt.Errorf("layout model unavailable: %w", err)
	}

	out, err := model.ClassifyTokens(ctx, port.ClassifyTokensInput{Words: words, Boxes: boxes})
	if err != nil {
		return nil, fmt.Errorf("token classification: %w", err)
	}

	wordLabels := labels.Resolve(out.Predictions, len(words))
	groups := fields.Aggregate(ordered, wordLabels)
	return fields.MapToRecord(groups, docType), nil
}

func (s *extractionService) confThreshold(docType domain.DocumentType) float64 {
	if docType == domain.DocumentTypeInvoice {
		return s.cfg.Extraction.InvoiceConfThreshold
	}
	return s.cfg.Extraction.ReceiptConfThreshold
}

func emptyResult(docType domain.DocumentType, text string) *ExtractionResult {
	return &ExtractionResult{
		DocumentType: docType,
		Fields:       fields.EmptyRecord(fields.SchemaFor(docType)),
		Text:         text,
	}
}

// ExtractFromUpload validates the uploaded file, runs extraction, archives
// the source image, and persists the result. Archival and notification are
// best-effort: their failures are logged but do not fail the request.
func (s *extractionService) ExtractFromUpload(ctx context.Context, input ExtractUploadInput) (*domain.ExtractionRecord, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.S3.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	image, err := io.ReadAll(io.LimitReader(input.File, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(image)) > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte content type detection; the extension alone is not trusted.
	sniffLen := 512
	if len(image) < sniffLen {
		sniffLen = len(image)
	}
	detectedType := http.DetectContentType(image[:sniffLen])
	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	contentType := domain.AllowedFileTypes[fileType]

	log.Printf("extractionService.ExtractFromUpload: processing %s (%s, %d bytes)",
		input.Header.Filename, contentType, len(image))

	result, err := s.Extract(ctx, image, contentType)
	if err != nil {
		return nil, fmt.Errorf("extracting fields: %w", err)
	}

	rec := &domain.ExtractionRecord{
		ID:           uuid.New(),
		DocumentType: result.DocumentType,
		SourceFile:   input.Header.Filename,
		Fields:       result.Fields,
		CreatedAt:    time.Now().UTC(),
	}

	storageKey := fmt.Sprintf("uploads/%s/%s", rec.ID, input.Header.Filename)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         storageKey,
		Body:        bytes.NewReader(image),
		ContentType: contentType,
		Size:        int64(len(image)),
	})
	if err != nil {
		log.Printf("extractionService.ExtractFromUpload: archiving %s failed: %v", storageKey, err)
	} else {
		rec.StorageKey = storageKey
	}

	if err := s.recordRepo.Save(ctx, rec); err != nil {
		log.Printf("extractionService.ExtractFromUpload: saving record %s failed: %v", rec.ID, err)
		return nil, fmt.Errorf("saving extraction record: %w", err)
	}

	if s.email != nil && s.cfg.Email.NotifyTo != "" {
		if err := s.email.SendExtractionComplete(ctx, s.cfg.Email.NotifyTo, rec); err != nil {
			log.Printf("extractionService.ExtractFromUpload: notification for %s failed: %v", rec.ID, err)
		}
	}

	return rec, nil
}

func (s *extractionService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.ExtractionRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

func (s *extractionService) ListRecords(ctx context.Context, limit, offset int) ([]domain.ExtractionRecord, error) {
	return s.recordRepo.List(ctx, limit, offset)
}
