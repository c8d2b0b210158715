package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"academico/internal/domain"
	"academico/internal/port"
)

// runContext holds everything one reconciliation run needs, bulk-loaded up
// front. It lives for a single call and is discarded afterwards, so
// concurrent reconciliations of different documents cannot interfere.
type runContext struct {
	catalog   domain.Catalog
	mandatory []domain.CurriculumSubject
	electives []domain.CurriculumSubject
	rules     []domain.EquivalencyRule
	siblings  []siblingCatalog

	// lookup tables over the target catalog; mandatory entries win over
	// electives on key collisions.
	byCode map[string]*domain.CurriculumSubject
	byName map[string]*domain.CurriculumSubject
	// rules grouped by origin subject.
	rulesByOrigin map[uuid.UUID][]domain.EquivalencyRule
}

// siblingCatalog is another catalog version of the same program, used by
// the cross-catalog matching fallback.
type siblingCatalog struct {
	catalog  domain.Catalog
	subjects []domain.CurriculumSubject
}

func loadRunContext(ctx context.Context, repo port.CatalogRepository, catalog domain.Catalog) (*runContext, error) {
	rc := &runContext{catalog: catalog}

	// The two subject reads are independent; issue them together.
	var wg sync.WaitGroup
	var mErr, eErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		rc.mandatory, mErr = repo.GetMandatorySubjects(ctx, catalog.ID)
	}()
	go func() {
		defer wg.Done()
		rc.electives, eErr = repo.GetElectiveSubjects(ctx, catalog.ID)
	}()
	wg.Wait()
	if mErr != nil {
		return nil, fmt.Errorf("loading mandatory subjects: %w", mErr)
	}
	if eErr != nil {
		return nil, fmt.Errorf("loading elective subjects: %w", eErr)
	}

	ids := make([]uuid.UUID, 0, len(rc.mandatory)+len(rc.electives))
	for i := range rc.mandatory {
		ids = append(ids, rc.mandatory[i].ID)
	}
	for i := range rc.electives {
		ids = append(ids, rc.electives[i].ID)
	}
	rules, err := repo.GetEquivalencyRules(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading equivalency rules: %w", err)
	}
	rc.rules = rules

	rc.index()
	return rc, nil
}

func (rc *runContext) index() {
	rc.byCode = map[string]*domain.CurriculumSubject{}
	rc.byName = map[string]*domain.CurriculumSubject{}
	for _, list := range [][]domain.CurriculumSubject{rc.mandatory, rc.electives} {
		for i := range list {
			s := &list[i]
			if k := codeKey(s.Code); k != "" {
				if _, ok := rc.byCode[k]; !ok {
					rc.byCode[k] = s
				}
			}
			if k := nameKey(s.Name); k != "" {
				if _, ok := rc.byName[k]; !ok {
					rc.byName[k] = s
				}
			}
		}
	}
	rc.rulesByOrigin = map[uuid.UUID][]domain.EquivalencyRule{}
	for _, r := range rc.rules {
		rc.rulesByOrigin[r.OriginSubjectID] = append(rc.rulesByOrigin[r.OriginSubjectID], r)
	}
}

// loadSiblings fetches the other catalog versions of the program and their
// subjects for the cross-catalog fallback. A program with a single catalog
// yields none.
func loadSiblings(ctx context.Context, repo port.CatalogRepository, rc *runContext) error {
	versions, err := repo.GetCatalogVersionsForProgram(ctx, rc.catalog.ProgramName)
	if err != nil {
		return fmt.Errorf("loading catalog versions: %w", err)
	}
	for _, v := range versions {
		if v.ID == rc.catalog.ID {
			continue
		}
		mandatory, err := repo.GetMandatorySubjects(ctx, v.ID)
		if err != nil {
			return fmt.Errorf("loading sibling %s subjects: %w", v.Version, err)
		}
		electives, err := repo.GetElectiveSubjects(ctx, v.ID)
		if err != nil {
			return fmt.Errorf("loading sibling %s electives: %w", v.Version, err)
		}
		rc.siblings = append(rc.siblings, siblingCatalog{
			catalog:  v,
			subjects: append(mandatory, electives...),
		})
	}
	return nil
}

func codeKey(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

func nameKey(name string) string {
	return domain.NormalizeToken(name)
}
