package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docext/internal/config"
	"docext/internal/domain"
	"docext/internal/port"
	"docext/internal/service"
	"docext/mocks"
)

func testConfig() *config.Config {
	return &config.Config{
		S3: config.S3Config{
			Bucket:        "docext-test",
			MaxFileSizeMB: 20,
		},
		Extraction: config.ExtractionConfig{
			ReceiptConfThreshold: 0.35,
			InvoiceConfThreshold: 0.30,
			LineTolerance:        0.015,
		},
	}
}

func det(text string, conf, x1, y1, x2, y2 float64) domain.RawDetection {
	return domain.RawDetection{
		Polygon: [4]domain.Point{
			{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
		},
		Text:       text,
		Confidence: conf,
	}
}

func fixedEngines(ocrEngine port.OCREngine, model port.TokenClassifier) *service.EngineProvider {
	return service.NewEngineProvider(
		func() (port.OCREngine, error) { return ocrEngine, nil },
		func() (port.TokenClassifier, error) { return model, nil },
	)
}

func TestExtractReceiptHappyPath(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			// Second line discovered first: reading order must fix it.
			det("Total", 0.95, 50, 100, 150, 130),
			det("$10.80", 0.92, 200, 102, 300, 131),
			det("SuperMart", 0.98, 50, 10, 250, 40),
			det("smudge", 0.10, 400, 400, 450, 420),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.MatchedBy(func(in port.ClassifyTokensInput) bool {
		// Reading order: SuperMart first, then Total / $10.80; smudge dropped.
		return len(in.Words) == 3 && in.Words[0] == "SuperMart" &&
			in.Words[1] == "Total" && in.Words[2] == "$10.80" &&
			len(in.Boxes) == 3
	})).Return(&port.ClassifyTokensOutput{
		Predictions: []domain.TokenPrediction{
			{WordIndex: -1, Label: "O"},
			{WordIndex: 0, Label: "B-TITLE"},
			{WordIndex: 1, Label: "O"},
			{WordIndex: 2, Label: "B-TOTAL"},
		},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, mock.MatchedBy(func(text string) bool {
		return text == "SuperMart\nTotal $10.80 smudge" || text == "SuperMart\nTotal $10.80\nsmudge"
	})).Return(domain.DocumentTypeReceipt, nil)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, nil, nil, nil, testConfig())

	result, err := svc.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeReceipt, result.DocumentType)
	assert.Equal(t, "SuperMart", result.Fields["title"])
	assert.Equal(t, "$10.80", result.Fields["total_price"])
	assert.Equal(t, "", result.Fields["tax"])
	assert.Len(t, result.Fields, 8)

	ocrEngine.AssertExpectations(t)
	model.AssertExpectations(t)
	classifier.AssertExpectations(t)
}

func TestExtractEngineUnavailableReturnsEmptyRecord(t *testing.T) {
	engines := service.NewEngineProvider(
		func() (port.OCREngine, error) { return nil, errors.New("engine init failed") },
		func() (port.TokenClassifier, error) { return nil, errors.New("unused") },
	)
	classifier := new(mocks.MockDocumentClassifier)

	svc := service.NewExtractionService(engines, classifier, nil, nil, nil, testConfig())

	result, err := svc.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeUnknown, result.DocumentType)
	assert.Len(t, result.Fields, 8)
	for k, v := range result.Fields {
		assert.Empty(t, v, "field %s should be empty", k)
	}
	classifier.AssertNotCalled(t, "ClassifyDocument", mock.Anything, mock.Anything)
}

func TestExtractNoLegibleTextReturnsEmptyRecord(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			det("faint", 0.05, 10, 10, 60, 30),
		},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, "faint").
		Return(domain.DocumentTypeReceipt, nil)

	model := new(mocks.MockTokenClassifier)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, nil, nil, nil, testConfig())

	result, err := svc.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeReceipt, result.DocumentType)
	for k, v := range result.Fields {
		assert.Empty(t, v, "field %s should be empty", k)
	}
	model.AssertNotCalled(t, "ClassifyTokens", mock.Anything, mock.Anything)
}

func TestExtractModelFailureFallsBackToRegex(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			det("Order ID: A123", 0.9, 50, 10, 300, 40),
			det("Tax $0.80", 0.9, 50, 100, 200, 130),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.Anything).
		Return(nil, errors.New("inference timeout"))

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, mock.Anything).
		Return(domain.DocumentTypeReceipt, nil)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, nil, nil, nil, testConfig())

	result, err := svc.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeReceipt, result.DocumentType)
	assert.Equal(t, "A123", result.Fields["order_id"])
	assert.Equal(t, "$0.80", result.Fields["tax"])
	assert.Len(t, result.Fields, 8)
}

func TestExtractInvoiceUsesLowerThreshold(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			// 0.32 passes the invoice threshold but not the receipt one.
			det("INVOICE", 0.32, 50, 10, 250, 40),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.MatchedBy(func(in port.ClassifyTokensInput) bool {
		return len(in.Words) == 1 && in.Words[0] == "INVOICE"
	})).Return(&port.ClassifyTokensOutput{
		Predictions: []domain.TokenPrediction{{WordIndex: 0, Label: "O"}},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, "INVOICE").
		Return(domain.DocumentTypeInvoice, nil)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, nil, nil, nil, testConfig())

	result, err := svc.Extract(context.Background(), []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, domain.DocumentTypeInvoice, result.DocumentType)
	assert.Len(t, result.Fields, 15)
	model.AssertExpectations(t)
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// pngBytes is a minimal payload carrying the PNG magic signature.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

func uploadInput(filename string, data []byte) service.ExtractUploadInput {
	return service.ExtractUploadInput{
		File: memFile{bytes.NewReader(data)},
		Header: &multipart.FileHeader{
			Filename: filename,
			Size:     int64(len(data)),
		},
	}
}

func TestExtractFromUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := service.NewExtractionService(fixedEngines(nil, nil), nil, nil, nil, nil, testConfig())

	_, err := svc.ExtractFromUpload(context.Background(), uploadInput("doc.pdf", pngBytes))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestExtractFromUploadRejectsMismatchedContent(t *testing.T) {
	svc := service.NewExtractionService(fixedEngines(nil, nil), nil, nil, nil, nil, testConfig())

	_, err := svc.ExtractFromUpload(context.Background(), uploadInput("doc.png", []byte("plain text, not an image")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestExtractFromUploadRejectsOversizedFile(t *testing.T) {
	cfg := testConfig()
	cfg.S3.MaxFileSizeMB = 1
	svc := service.NewExtractionService(fixedEngines(nil, nil), nil, nil, nil, nil, cfg)

	input := uploadInput("big.png", pngBytes)
	input.Header.Size = 2 * 1024 * 1024

	_, err := svc.ExtractFromUpload(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestExtractFromUploadPersistsRecord(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			det("SuperMart", 0.98, 50, 10, 250, 40),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.Anything).Return(&port.ClassifyTokensOutput{
		Predictions: []domain.TokenPrediction{{WordIndex: 0, Label: "B-TITLE"}},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, mock.Anything).
		Return(domain.DocumentTypeReceipt, nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "docext-test" && in.ContentType == "image/png"
	})).Return(&port.UploadOutput{Location: "s3://docext-test/key"}, nil)

	repo := new(mocks.MockExtractionRecordRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(rec *domain.ExtractionRecord) bool {
		return rec.DocumentType == domain.DocumentTypeReceipt &&
			rec.SourceFile == "receipt.png" &&
			rec.StorageKey != "" &&
			rec.Fields["title"] == "SuperMart"
	})).Return(nil)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, repo, storage, nil, testConfig())

	rec, err := svc.ExtractFromUpload(context.Background(), uploadInput("receipt.png", pngBytes))
	require.NoError(t, err)
	assert.Equal(t, "receipt.png", rec.SourceFile)
	assert.NotEmpty(t, rec.StorageKey)

	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestExtractFromUploadArchiveFailureIsNonFatal(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			det("SuperMart", 0.98, 50, 10, 250, 40),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.Anything).Return(&port.ClassifyTokensOutput{
		Predictions: []domain.TokenPrediction{{WordIndex: 0, Label: "B-TITLE"}},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, mock.Anything).
		Return(domain.DocumentTypeReceipt, nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).
		Return(nil, errors.New("bucket unavailable"))

	repo := new(mocks.MockExtractionRecordRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(rec *domain.ExtractionRecord) bool {
		return rec.StorageKey == ""
	})).Return(nil)

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, repo, storage, nil, testConfig())

	rec, err := svc.ExtractFromUpload(context.Background(), uploadInput("receipt.png", pngBytes))
	require.NoError(t, err)
	assert.Empty(t, rec.StorageKey)
	repo.AssertExpectations(t)
}

func TestExtractFromUploadSendsNotification(t *testing.T) {
	ocrEngine := new(mocks.MockOCREngine)
	ocrEngine.On("Detect", mock.Anything, mock.Anything).Return(&port.DetectOutput{
		Width:  800,
		Height: 1200,
		Detections: []domain.RawDetection{
			det("SuperMart", 0.98, 50, 10, 250, 40),
		},
	}, nil)

	model := new(mocks.MockTokenClassifier)
	model.On("ClassifyTokens", mock.Anything, mock.Anything).Return(&port.ClassifyTokensOutput{
		Predictions: []domain.TokenPrediction{{WordIndex: 0, Label: "B-TITLE"}},
	}, nil)

	classifier := new(mocks.MockDocumentClassifier)
	classifier.On("ClassifyDocument", mock.Anything, mock.Anything).
		Return(domain.DocumentTypeReceipt, nil)

	storage := new(mocks.MockObjectStorage)
	storage.On("Upload", mock.Anything, mock.Anything).
		Return(&port.UploadOutput{}, nil)

	repo := new(mocks.MockExtractionRecordRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	email := new(mocks.MockEmailSender)
	email.On("SendExtractionComplete", mock.Anything, "ops@example.com", mock.Anything).Return(nil)

	cfg := testConfig()
	cfg.Email.NotifyTo = "ops@example.com"

	svc := service.NewExtractionService(fixedEngines(ocrEngine, model), classifier, repo, storage, email, cfg)

	_, err := svc.ExtractFromUpload(context.Background(), uploadInput("receipt.png", pngBytes))
	require.NoError(t, err)
	email.AssertExpectations(t)
}
