package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docext/internal/port"
)

// MockOCREngine is a mock implementation of port.OCREngine.
type MockOCREngine struct {
	mock.Mock
}

func (m *MockOCREngine) Detect(ctx context.Context, input port.DetectInput) (*port.DetectOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DetectOutput), args.Error(1)
}
