package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"academico/internal/domain"
	"academico/internal/port"
)

// CatalogDetail bundles one catalog with its full subject list and
// prerequisite edges.
type CatalogDetail struct {
	Catalog       domain.Catalog             `json:"catalog"`
	Mandatory     []domain.CurriculumSubject `json:"mandatory"`
	Electives     []domain.CurriculumSubject `json:"electives"`
	Prerequisites []domain.Prerequisite      `json:"prerequisites"`
}

// CatalogService defines read access to curriculum catalogs.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Catalog, error)
	GetDetail(ctx context.Context, catalogID uuid.UUID) (*CatalogDetail, error)
}

type catalogService struct {
	catalogs port.CatalogRepository
}

// NewCatalogService creates a new CatalogService implementation.
func NewCatalogService(catalogs port.CatalogRepository) CatalogService {
	return &catalogService{catalogs: catalogs}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Catalog, error) {
	catalogs, err := s.catalogs.ListCatalogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.List: %w", err)
	}
	return catalogs, nil
}

func (s *catalogService) GetDetail(ctx context.Context, catalogID uuid.UUID) (*CatalogDetail, error) {
	catalog, err := s.catalogs.GetByID(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	mandatory, err := s.catalogs.GetMandatorySubjects(ctx, catalogID)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetDetail: %w", err)
	}
	electives, err := s.catalogs.GetElectiveSubjects(ctx, catalogID)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetDetail: %w", err)
	}
	prereqs, err := s.catalogs.GetPrerequisites(ctx, catalogID)
	if err != nil {
		return nil, fmt.Errorf("catalog.GetDetail: %w", err)
	}
	return &CatalogDetail{
		Catalog:       *catalog,
		Mandatory:     mandatory,
		Electives:     electives,
		Prerequisites: prereqs,
	}, nil
}
