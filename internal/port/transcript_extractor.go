package port

import "academico/internal/domain"

// TranscriptExtractor turns rendered transcript pages into normalized
// records plus document metadata.
type TranscriptExtractor interface {
	Extract(doc *domain.TranscriptDocument) (*domain.Transcript, error)
}
