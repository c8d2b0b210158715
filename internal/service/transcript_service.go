package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"academico/internal/domain"
	"academico/internal/port"
	"academico/internal/reconcile"
)

// ReconcileInput is the DTO for transcript reconciliation requests. The
// catalog ID is the disambiguation hint for retried calls.
type ReconcileInput struct {
	Document  domain.TranscriptDocument `json:"document" binding:"required"`
	CatalogID *uuid.UUID                `json:"catalog_id"`
}

// TranscriptService defines the transcript processing contract.
type TranscriptService interface {
	Reconcile(ctx context.Context, input ReconcileInput) (*domain.ReconciliationResult, error)
	Extract(ctx context.Context, doc *domain.TranscriptDocument) (*domain.Transcript, error)
}

type transcriptService struct {
	extractor port.TranscriptExtractor
	engine    *reconcile.Engine
}

// NewTranscriptService creates a new TranscriptService implementation.
func NewTranscriptService(extractor port.TranscriptExtractor, engine *reconcile.Engine) TranscriptService {
	return &transcriptService{extractor: extractor, engine: engine}
}

func (s *transcriptService) Reconcile(ctx context.Context, input ReconcileInput) (*domain.ReconciliationResult, error) {
	transcript, err := s.extractor.Extract(&input.Document)
	if err != nil {
		return nil, fmt.Errorf("transcript.Reconcile: %w", err)
	}
	log.Printf("service.TranscriptService: extracted %d records (program %q, catalog token %q)",
		len(transcript.Records), transcript.Metadata.ProgramName, transcript.Metadata.CatalogToken)

	result, err := s.engine.Reconcile(ctx, transcript, input.CatalogID)
	if err != nil {
		return nil, fmt.Errorf("transcript.Reconcile: %w", err)
	}
	return result, nil
}

func (s *transcriptService) Extract(ctx context.Context, doc *domain.TranscriptDocument) (*domain.Transcript, error) {
	transcript, err := s.extractor.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("transcript.Extract: %w", err)
	}
	return transcript, nil
}
