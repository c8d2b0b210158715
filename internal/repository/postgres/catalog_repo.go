package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"academico/internal/domain"
	"academico/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) GetByID(ctx context.Context, catalogID uuid.UUID) (*domain.Catalog, error) {
	var c domain.Catalog
	err := r.db.GetContext(ctx, &c,
		`SELECT id, program_name, version, created_at
		 FROM catalogs WHERE id = $1`, catalogID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCatalogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *catalogRepo) ListCatalogs(ctx context.Context) ([]domain.Catalog, error) {
	var catalogs []domain.Catalog
	err := r.db.SelectContext(ctx, &catalogs,
		`SELECT id, program_name, version, created_at
		 FROM catalogs ORDER BY program_name, version`)
	if err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *catalogRepo) GetCatalogVersionsForProgram(ctx context.Context, programName string) ([]domain.Catalog, error) {
	var catalogs []domain.Catalog
	err := r.db.SelectContext(ctx, &catalogs,
		`SELECT id, program_name, version, created_at
		 FROM catalogs
		 WHERE LOWER(TRIM(program_name)) = LOWER(TRIM($1))
		 ORDER BY version`, programName)
	if err != nil {
		return nil, err
	}
	return catalogs, nil
}

func (r *catalogRepo) GetMandatorySubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error) {
	return r.subjects(ctx, catalogID, "level >= 1")
}

func (r *catalogRepo) GetElectiveSubjects(ctx context.Context, catalogID uuid.UUID) ([]domain.CurriculumSubject, error) {
	return r.subjects(ctx, catalogID, "level = 0")
}

func (r *catalogRepo) subjects(ctx context.Context, catalogID uuid.UUID, levelCond string) ([]domain.CurriculumSubject, error) {
	var subjects []domain.CurriculumSubject
	err := r.db.SelectContext(ctx, &subjects,
		`SELECT id, catalog_id, code, name, credit_hours, level
		 FROM subjects
		 WHERE catalog_id = $1 AND `+levelCond+`
		 ORDER BY level, code`, catalogID)
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *catalogRepo) GetEquivalencyRules(ctx context.Context, subjectIDs []uuid.UUID) ([]domain.EquivalencyRule, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT e.id, e.origin_subject_id, s.code AS origin_code, e.expression
		 FROM equivalency_rules e
		 JOIN subjects s ON s.id = e.origin_subject_id
		 WHERE e.origin_subject_id IN (?)`, subjectIDs)
	if err != nil {
		return nil, err
	}
	var rules []domain.EquivalencyRule
	if err := r.db.SelectContext(ctx, &rules, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *catalogRepo) GetPrerequisites(ctx context.Context, catalogID uuid.UUID) ([]domain.Prerequisite, error) {
	var edges []domain.Prerequisite
	err := r.db.SelectContext(ctx, &edges,
		`SELECT p.subject_id, p.requires_subject_id, p.kind
		 FROM prerequisites p
		 JOIN subjects s ON s.id = p.subject_id
		 WHERE s.catalog_id = $1`, catalogID)
	if err != nil {
		return nil, err
	}
	return edges, nil
}
