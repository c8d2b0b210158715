package extract

import (
	"regexp"
	"strings"

	"academico/internal/domain"
)

// The pending-requirements section lists the mandatory components the
// student has not yet attempted, one per line:
//
//	ABC0123  NOME DO COMPONENTE  64 h
var (
	pendingSectionRe = regexp.MustCompile(`(?i)COMPONENTES\s+CURRICULARES\s+(?:OBRIGAT[ÓO]RIOS\s+)?PENDENTES`)
	pendingLineRe    = regexp.MustCompile(`^\s*([A-Z]{2,4}\d{3,4}[A-Z]?)\s+(.{3,}?)\s+(\d{1,3})\s*h?\s*$`)
	sectionBreakRe   = regexp.MustCompile(`^[A-ZÀ-Ú][A-ZÀ-Ú /-]{8,}:?$`)
)

// ParsePendingSection extracts pending-requirement records from the
// flattened document text. The section ends at the next section title or at
// the end of the document. Returns nil when the section is absent.
func ParsePendingSection(text string) []domain.DisciplineRecord {
	loc := pendingSectionRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}

	var records []domain.DisciplineRecord
	lines := strings.Split(text[loc[1]:], "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := pendingLineRe.FindStringSubmatch(line)
		if m == nil {
			// A non-matching all-caps title closes the section; stray
			// noise lines inside it are skipped.
			if i > 0 && sectionBreakRe.MatchString(domain.NormalizeToken(line)) {
				break
			}
			continue
		}
		records = append(records, domain.DisciplineRecord{
			Kind:        domain.RecordPending,
			Code:        m[1],
			Name:        CleanName(m[2]),
			CreditHours: parseHours(m[3]),
		})
	}
	return records
}
