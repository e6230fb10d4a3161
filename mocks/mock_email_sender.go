package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docext/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendExtractionComplete(ctx context.Context, toEmail string, rec *domain.ExtractionRecord) error {
	args := m.Called(ctx, toEmail, rec)
	return args.Error(0)
}
