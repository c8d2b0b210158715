// Package reconcile aligns extracted transcript records with a curriculum
// catalog and partitions the catalog's subjects into completed, pending and
// remaining electives.
package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"academico/internal/domain"
	"academico/internal/equivalency"
	"academico/internal/extract"
	"academico/internal/port"
)

// Engine is the top-level reconciliation orchestrator. It is the only
// component that talks to the catalog store, and it does so as a few bulk
// reads per run.
type Engine struct {
	catalogs port.CatalogRepository
}

// NewEngine creates a reconciliation engine.
func NewEngine(catalogs port.CatalogRepository) *Engine {
	return &Engine{catalogs: catalogs}
}

// Reconcile matches the transcript against a catalog. When the program or
// catalog version cannot be resolved unambiguously it returns a
// selection-required result rather than an error; supplying catalogHint on
// a retry always resolves it.
func (e *Engine) Reconcile(ctx context.Context, t *domain.Transcript, catalogHint *uuid.UUID) (*domain.ReconciliationResult, error) {
	catalog, selection, err := e.resolveCatalog(ctx, &t.Metadata, catalogHint)
	if err != nil {
		return nil, err
	}
	if selection != nil {
		selection.Metadata = t.Metadata
		return selection, nil
	}

	rc, err := loadRunContext(ctx, e.catalogs, *catalog)
	if err != nil {
		return nil, err
	}
	if err := loadSiblings(ctx, e.catalogs, rc); err != nil {
		return nil, err
	}

	matched := e.matchAll(rc, t.Records)
	matched = resolveDuplicates(matched)

	result := e.aggregate(rc, t, matched)
	return result, nil
}

func (e *Engine) resolveCatalog(ctx context.Context, md *domain.TranscriptMetadata, hint *uuid.UUID) (*domain.Catalog, *domain.ReconciliationResult, error) {
	if hint != nil {
		catalog, err := e.catalogs.GetByID(ctx, *hint)
		if err != nil {
			return nil, nil, fmt.Errorf("loading catalog %s: %w", hint, err)
		}
		return catalog, nil, nil
	}

	if md.ProgramName == "" {
		sel, err := e.selectionRequired(ctx, nil, "program name not found in transcript")
		return nil, sel, err
	}

	versions, err := e.catalogs.GetCatalogVersionsForProgram(ctx, md.ProgramName)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog versions: %w", err)
	}
	switch {
	case len(versions) == 0:
		sel, err := e.selectionRequired(ctx, nil,
			fmt.Sprintf("no catalog matches program %q", md.ProgramName))
		return nil, sel, err
	case len(versions) == 1:
		return &versions[0], nil, nil
	}

	token := domain.NormalizeToken(md.CatalogToken)
	for i := range versions {
		if token != "" && domain.NormalizeToken(versions[i].Version) == token {
			return &versions[i], nil, nil
		}
	}
	sel, err := e.selectionRequired(ctx, versions,
		fmt.Sprintf("program %q has %d catalog versions and token %q matches none", md.ProgramName, len(versions), md.CatalogToken))
	return nil, sel, err
}

// selectionRequired builds the disambiguation result. With no candidate
// list of its own it offers every known catalog.
func (e *Engine) selectionRequired(ctx context.Context, candidates []domain.Catalog, reason string) (*domain.ReconciliationResult, error) {
	if candidates == nil {
		all, err := e.catalogs.ListCatalogs(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing catalogs: %w", err)
		}
		candidates = all
	}
	log.Printf("reconcile.Engine: selection required: %s", reason)
	return &domain.ReconciliationResult{
		SelectionRequired: true,
		Candidates:        candidates,
		Reason:            reason,
	}, nil
}

func (e *Engine) matchAll(rc *runContext, records []domain.DisciplineRecord) []domain.MatchResult {
	matched := make([]domain.MatchResult, 0, len(records))
	for i := range records {
		if records[i].Kind != domain.RecordRegular {
			continue
		}
		matched = append(matched, matchRecord(rc, &records[i]))
	}
	return matched
}

// outcomePriority orders duplicate attempts at the same subject:
// completed family > enrolled > everything else.
func outcomePriority(o domain.Outcome) int {
	switch {
	case o.IsCompleted():
		return 2
	case o.IsEnrolled():
		return 1
	}
	return 0
}

// resolveDuplicates keeps, per matched subject, only the highest-priority
// record. Ties keep the earlier-seen record; the loser is discarded.
func resolveDuplicates(matched []domain.MatchResult) []domain.MatchResult {
	bestBySubject := map[uuid.UUID]int{}
	var out []domain.MatchResult
	for _, m := range matched {
		if m.Subject == nil {
			out = append(out, m)
			continue
		}
		prevIdx, seen := bestBySubject[m.Subject.ID]
		if !seen {
			bestBySubject[m.Subject.ID] = len(out)
			out = append(out, m)
			continue
		}
		if outcomePriority(m.Record.Outcome) > outcomePriority(out[prevIdx].Record.Outcome) {
			out[prevIdx] = m
		}
	}
	return out
}

func (e *Engine) aggregate(rc *runContext, t *domain.Transcript, matched []domain.MatchResult) *domain.ReconciliationResult {
	// Completed-outcome codes across all regular records feed the
	// equivalency post-pass, each with its latest completion term.
	var completedCodes []string
	termByCode := map[string]string{}
	creditHours := 0
	for _, r := range t.Records {
		if r.Kind != domain.RecordRegular || !r.Outcome.IsCompleted() {
			continue
		}
		completedCodes = append(completedCodes, r.Code)
		creditHours += r.CreditHours
		k := codeKey(r.Code)
		if prev, ok := termByCode[k]; !ok || extract.MostRecentTerm([]string{prev, r.Period}) == r.Period {
			termByCode[k] = r.Period
		}
	}
	completedSet := equivalency.NewCodeSet(completedCodes)

	// Direct completion per target subject, plus the set of every target
	// subject some record matched at all.
	completedDirect := map[uuid.UUID]domain.MatchResult{}
	matchedSubjects := map[uuid.UUID]bool{}
	for _, m := range matched {
		if m.Subject == nil || m.Subject.CatalogID != rc.catalog.ID {
			continue
		}
		matchedSubjects[m.Subject.ID] = true
		if m.Record.Outcome.IsCompleted() {
			completedDirect[m.Subject.ID] = m
		}
	}

	var completed []domain.CompletedSubject
	var pending []domain.CurriculumSubject
	consumedElectives := map[uuid.UUID]bool{}

	for _, s := range rc.mandatory {
		if m, ok := completedDirect[s.ID]; ok {
			cs := domain.CompletedSubject{Subject: s}
			if m.Via == domain.MatchViaEquivalency {
				cs.ViaEquivalency = true
				cs.SatisfiedBy = []string{m.Record.Code}
			}
			completed = append(completed, cs)
			continue
		}
		// The post-pass covers only subjects no record matched at all; an
		// attempt that matched without completing keeps its subject pending.
		if !matchedSubjects[s.ID] {
			if codes, ok := e.satisfyByEquivalency(rc, s.ID, completedSet, termByCode); ok {
				completed = append(completed, domain.CompletedSubject{
					Subject:        s,
					ViaEquivalency: true,
					SatisfiedBy:    codes,
				})
				e.consumeElectives(rc, codes, consumedElectives)
				continue
			}
		}
		pending = append(pending, s)
	}

	var remaining []domain.CurriculumSubject
	for _, s := range rc.electives {
		if _, done := completedDirect[s.ID]; done || consumedElectives[s.ID] {
			continue
		}
		remaining = append(remaining, s)
	}

	total := len(completed) + len(pending)
	pct := 0.0
	if total > 0 {
		pct = float64(len(completed)) / float64(total)
	}

	var pendingFlags []string
	for _, r := range t.Records {
		if r.Kind == domain.RecordPending {
			pendingFlags = append(pendingFlags, r.Code)
		}
	}

	catalog := rc.catalog
	return &domain.ReconciliationResult{
		Catalog:            &catalog,
		MatchedRecords:     matched,
		CompletedMandatory: completed,
		PendingMandatory:   pending,
		RemainingElectives: remaining,
		Validation: domain.ValidationInfo{
			CompositeIndex:    t.Metadata.CompositeIndex,
			WeightedAverage:   t.Metadata.WeightedAverage,
			CreditHoursEarned: creditHours,
			PendingFlags:      pendingFlags,
		},
		Summary: domain.ReconciliationSummary{
			TotalRecords:         len(t.Records),
			TotalMandatory:       len(rc.mandatory),
			CompletedCount:       len(completed),
			PendingCount:         len(pending),
			ElectiveCount:        len(remaining),
			CompletionPercentage: pct,
		},
		Metadata: t.Metadata,
	}
}

// satisfyByEquivalency evaluates every rule of the subject against the
// completed-code set and returns the satisfying codes of the first rule
// that holds, reduced to the most recent alternative.
func (e *Engine) satisfyByEquivalency(rc *runContext, subjectID uuid.UUID, completed equivalency.CodeSet, termByCode map[string]string) ([]string, bool) {
	for _, rule := range rc.rulesByOrigin[subjectID] {
		if ok, codes := equivalency.Evaluate(rule.Expression, completed); ok {
			return mostRecentAlternative(rule.Expression, codes, termByCode), true
		}
	}
	return nil, false
}

// mostRecentAlternative keeps, among the codes that satisfy the expression
// on their own, only the one completed in the most recent term; the earliest
// seen wins a term tie. A combination with no individually sufficient code
// (an AND conjunction) is kept whole.
func mostRecentAlternative(expr string, codes []string, termByCode map[string]string) []string {
	if len(codes) < 2 {
		return codes
	}
	var alternatives []string
	for _, c := range codes {
		if ok, _ := equivalency.Evaluate(expr, equivalency.NewCodeSet([]string{c})); ok {
			alternatives = append(alternatives, c)
		}
	}
	if len(alternatives) == 0 {
		return codes
	}
	terms := make([]string, len(alternatives))
	for i, c := range alternatives {
		terms[i] = termByCode[codeKey(c)]
	}
	latest := extract.MostRecentTerm(terms)
	for i, c := range alternatives {
		if terms[i] == latest {
			return []string{c}
		}
	}
	return alternatives[:1]
}

// consumeElectives removes from the elective pool any elective whose record
// just satisfied a mandatory subject's equivalency, so it is not counted
// twice.
func (e *Engine) consumeElectives(rc *runContext, codes []string, consumed map[uuid.UUID]bool) {
	for _, code := range codes {
		s, ok := rc.byCode[codeKey(code)]
		if !ok || !s.IsElective() {
			continue
		}
		consumed[s.ID] = true
	}
}
