package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docext/internal/port"
)

// MockTokenClassifier is a mock implementation of port.TokenClassifier.
type MockTokenClassifier struct {
	mock.Mock
}

func (m *MockTokenClassifier) ClassifyTokens(ctx context.Context, input port.ClassifyTokensInput) (*port.ClassifyTokensOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ClassifyTokensOutput), args.Error(1)
}
