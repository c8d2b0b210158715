package port

import (
	"context"

	"github.com/google/uuid"

	"academico/internal/domain"
)

// CatalogRepository is the read-only contract against the curriculum catalog
// store. Reconciliation issues a small number of bulk reads per run; there
// are no per-record queries.
type CatalogRepository interface {
	GetByID(ctx context.Context, catalogID uuid.UUID) (*domain.Catalog, error)
	ListCatalogs(ctx context.Context) ([]domain.Catalog, error)
	// GetCatalogVersionsForProgram matches the program name
	// case-insensitively and returns every catalog version of it.
	GetCatalogVersionsForProgram(ctx context.Context, programName string) ([]domain.Catalog, error)
	GetMandatorySubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error)
	GetElectiveSubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error)
	// GetEquivalencyRules returns the rules whose origin subject is one of
	// the given subjects.
	GetEquivalencyRules(ctx context.Context, subjectIDs []uuid.UUID) ([]domain.EquivalencyRule, error)
	GetPrerequisites(ctx context.Context, catalogID uuid.UUID) ([]domain.Prerequisite, error)
}
