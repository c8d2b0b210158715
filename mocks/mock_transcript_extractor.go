package mocks

import (
	"github.com/stretchr/testify/mock"

	"academico/internal/domain"
)

// MockTranscriptExtractor is a mock implementation of
// port.TranscriptExtractor.
type MockTranscriptExtractor struct {
	mock.Mock
}

func (m *MockTranscriptExtractor) Extract(doc *domain.TranscriptDocument) (*domain.Transcript, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transcript), args.Error(1)
}
