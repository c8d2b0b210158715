package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"academico/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) GetByID(ctx context.Context, catalogID uuid.UUID) (*domain.Catalog, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Catalog), args.Error(1)
}

func (m *MockCatalogRepo) ListCatalogs(ctx context.Context) ([]domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Catalog), args.Error(1)
}

func (m *MockCatalogRepo) GetCatalogVersionsForProgram(ctx context.Context, programName string) ([]domain.Catalog, error) {
	args := m.Called(ctx, programName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Catalog), args.Error(1)
}

func (m *MockCatalogRepo) GetMandatorySubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurriculumSubject), args.Error(1)
}

func (m *MockCatalogRepo) GetElectiveSubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurriculumSubject), args.Error(1)
}

func (m *MockCatalogRepo) GetEquivalencyRules(ctx context.Context, subjectIDs []uuid.UUID) ([]domain.EquivalencyRule, error) {
	args := m.Called(ctx, subjectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EquivalencyRule), args.Error(1)
}

func (m *MockCatalogRepo) GetPrerequisites(ctx context.Context, catalogID uuid.UUID) ([]domain.Prerequisite, error) {
	args := m.Called(ctx, catalogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Prerequisite), args.Error(1)
}
