package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docext/internal/domain"
)

// MockDocumentClassifier is a mock implementation of port.DocumentClassifier.
type MockDocumentClassifier struct {
	mock.Mock
}

func (m *MockDocumentClassifier) ClassifyDocument(ctx context.Context, text string) (domain.DocumentType, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.DocumentType), args.Error(1)
}
