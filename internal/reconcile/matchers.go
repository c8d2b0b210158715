package reconcile

import (
	"regexp"

	"academico/internal/domain"
)

// A matcher is one strategy of the matching cascade: nil means "no match,
// try the next one". Keeping each heuristic a separate pure function keeps
// the cascade independently testable.
type matcher func(rc *runContext, rec *domain.DisciplineRecord) *domain.MatchResult

// strategies is the cascade order: exact code, exact name, the same pair
// against the program's other catalog versions, then equivalency rules.
var strategies = []matcher{
	matchByCode,
	matchByName,
	matchCrossCatalog,
	matchByEquivalency,
}

// matchRecord runs the cascade and always returns a result; an exhausted
// cascade yields Via == MatchViaNone so unmatched records stay observable.
func matchRecord(rc *runContext, rec *domain.DisciplineRecord) domain.MatchResult {
	for _, try := range strategies {
		if m := try(rc, rec); m != nil {
			return *m
		}
	}
	return domain.MatchResult{Record: *rec, Via: domain.MatchViaNone}
}

func matchByCode(rc *runContext, rec *domain.DisciplineRecord) *domain.MatchResult {
	k := codeKey(rec.Code)
	if k == "" {
		return nil
	}
	if s, ok := rc.byCode[k]; ok {
		return &domain.MatchResult{Record: *rec, Subject: s, Via: domain.MatchViaCode}
	}
	return nil
}

func matchByName(rc *runContext, rec *domain.DisciplineRecord) *domain.MatchResult {
	k := nameKey(rec.Name)
	if k == "" {
		return nil
	}
	if s, ok := rc.byName[k]; ok {
		return &domain.MatchResult{Record: *rec, Subject: s, Via: domain.MatchViaName}
	}
	return nil
}

func matchCrossCatalog(rc *runContext, rec *domain.DisciplineRecord) *domain.MatchResult {
	ck := codeKey(rec.Code)
	nk := nameKey(rec.Name)
	for i := range rc.siblings {
		for j := range rc.siblings[i].subjects {
			s := &rc.siblings[i].subjects[j]
			if ck != "" && codeKey(s.Code) == ck {
				return &domain.MatchResult{Record: *rec, Subject: s, Via: domain.MatchViaCrossCatalog}
			}
			if nk != "" && nameKey(s.Name) == nk {
				return &domain.MatchResult{Record: *rec, Subject: s, Via: domain.MatchViaCrossCatalog}
			}
		}
	}
	return nil
}

// matchByEquivalency looks for a rule whose expression references the
// record's code and matches the record to the rule's origin subject.
func matchByEquivalency(rc *runContext, rec *domain.DisciplineRecord) *domain.MatchResult {
	ck := codeKey(rec.Code)
	if ck == "" {
		return nil
	}
	for _, rule := range rc.rules {
		if !expressionReferences(rule.Expression, ck) {
			continue
		}
		if s, ok := rc.byCode[codeKey(rule.OriginCode)]; ok {
			return &domain.MatchResult{Record: *rec, Subject: s, Via: domain.MatchViaEquivalency}
		}
	}
	return nil
}

var exprTokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// expressionReferences reports whether the expression mentions the code as
// a whole token (never as a substring of a longer code).
func expressionReferences(expr, canonicalCode string) bool {
	for _, tok := range exprTokenRe.FindAllString(expr, -1) {
		if codeKey(tok) == canonicalCode {
			return true
		}
	}
	return false
}
