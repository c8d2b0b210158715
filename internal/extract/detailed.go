package extract

import (
	"regexp"
	"strings"

	"academico/internal/domain"
)

// Format D ("histórico detalhado") abandons the tight table for narrative
// blocks: a subject header line carrying name, hours and a long-form
// outcome, followed by free text (syllabus, professor, period, code). The
// signature is the syllabus marker co-occurring with long-form outcomes.
var (
	syllabusMarkerRe  = regexp.MustCompile(`(?i)\bEmenta\b`)
	longOutcomeRe     = regexp.MustCompile(`(?i)\b(Aprovad[oa]|Reprovad[oa]|Matriculad[oa]|Trancad[oa]|Cancelad[oa]|Dispensad[oa])\b`)
	detailedHeaderRe  = regexp.MustCompile(`(?i)^(.{3,}?)\s+(\d{1,3})\s*h\s+((?:Aprovad|Reprovad|Matriculad|Trancad|Cancelad|Dispensad)[oa][^\n]*)$`)
	detailedPeriodRe  = regexp.MustCompile(`\b(\d{4}\.\d)\b`)
	detailedCodeRe    = regexp.MustCompile(`\b([A-Z]{2,4}\d{3,4}[A-Z]?)\b`)
	detailedGradeRe   = regexp.MustCompile(`(?i)\b(?:m[ée]dia|nota)\s*:?\s*(\d{1,2}[.,]\d)\b`)
)

// blockCap bounds the forward search for a subject's period/code pair when
// no next header closes the block.
const blockCap = 8

// IsDetailedFormat reports whether the document uses the narrative layout.
// This is a single document-level decision, not a per-row one.
func IsDetailedFormat(text string) bool {
	return syllabusMarkerRe.MatchString(text) && longOutcomeRe.MatchString(text)
}

// ParseDetailed extracts records from the narrative layout. Each header line
// anchors one record; the period and code are found by forward search in
// the following block, bounded by the next header or the line cap.
func ParseDetailed(text string) []domain.DisciplineRecord {
	lines := strings.Split(text, "\n")
	var records []domain.DisciplineRecord

	for i := 0; i < len(lines); i++ {
		m := detailedHeaderRe.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		outcome, ok := mapLongOutcome(m[3])
		if !ok {
			continue
		}
		rec := domain.DisciplineRecord{
			Kind:        domain.RecordRegular,
			Name:        CleanName(m[1]),
			CreditHours: parseHours(m[2]),
			Outcome:     outcome,
			Grade:       domain.NoGrade,
		}
		if g := detailedGradeRe.FindStringSubmatch(m[3]); g != nil {
			rec.Grade = strings.ReplaceAll(g[1], ",", ".")
		}

		for j := i + 1; j < len(lines) && j <= i+blockCap; j++ {
			line := strings.TrimSpace(lines[j])
			if detailedHeaderRe.MatchString(line) {
				break
			}
			if rec.Period == "" {
				if p := detailedPeriodRe.FindStringSubmatch(line); p != nil {
					rec.Period = p[1]
				}
			}
			if rec.Code == "" {
				if c := detailedCodeRe.FindStringSubmatch(line); c != nil {
					rec.Code = c[1]
				}
			}
			if rec.Period != "" && rec.Code != "" {
				break
			}
		}
		records = append(records, rec)
	}
	return records
}

// mapLongOutcome folds a long-form outcome phrase onto the outcome
// enumeration. Order matters: the absence variants are prefixes of the
// plain failed phrase.
func mapLongOutcome(phrase string) (domain.Outcome, bool) {
	up := domain.NormalizeToken(phrase)
	switch {
	case strings.HasPrefix(up, "REPROVADO POR MEDIA E"), strings.HasPrefix(up, "REPROVADA POR MEDIA E"):
		return domain.OutcomeFailedGradeAbs, true
	case strings.HasPrefix(up, "REPROVADO POR FALTA"), strings.HasPrefix(up, "REPROVADA POR FALTA"):
		return domain.OutcomeFailedAbsence, true
	case strings.HasPrefix(up, "REPROVAD"):
		return domain.OutcomeFailed, true
	case strings.HasPrefix(up, "APROVAD"):
		return domain.OutcomeApproved, true
	case strings.HasPrefix(up, "MATRICULAD"):
		return domain.OutcomeEnrolled, true
	case strings.HasPrefix(up, "TRANCAD"):
		return domain.OutcomeWithdrawn, true
	case strings.HasPrefix(up, "CANCELAD"):
		return domain.OutcomeCancelled, true
	case strings.HasPrefix(up, "DISPENSAD"):
		return domain.OutcomeExempted, true
	}
	return "", false
}
