package extract

import (
	"strings"

	"academico/internal/domain"
	"academico/internal/port"
)

// Extractor runs the full extraction pass: row collation, format dispatch,
// record assembly, pending-section parse and metadata lookup. It holds no
// per-document state; one instance serves concurrent documents.
type Extractor struct{}

// NewExtractor creates a transcript extractor.
func NewExtractor() port.TranscriptExtractor {
	return &Extractor{}
}

// Extract turns rendered pages into normalized records and metadata.
// Returns domain.ErrEmptyDocument when no usable text is present; every
// per-record anomaly is tolerated silently.
func (e *Extractor) Extract(doc *domain.TranscriptDocument) (*domain.Transcript, error) {
	rows := CollateRows(doc)
	text := FlattenText(rows)
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	var records []domain.DisciplineRecord
	if IsDetailedFormat(text) {
		records = ParseDetailed(text)
	} else {
		bounds := DetectColumnBounds(rows)
		records = AssembleRecords(ClassifyRows(rows, bounds))
	}
	records = append(records, ParsePendingSection(text)...)

	md := ExtractMetadata(text)
	md.CurrentTerm, md.TermCount = DeriveTermStats(records)

	return &domain.Transcript{Records: records, Metadata: md}, nil
}
