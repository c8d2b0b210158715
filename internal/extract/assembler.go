package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"academico/internal/domain"
)

// titleRe locates an academic-title token inside a content cell; everything
// before it is the subject name, everything from it onward the professor.
var titleRe = regexp.MustCompile(`(?i)\b(DRA?\.|MSC\.|ME\.|ESP\.|PROFA?\.)`)

var digitsRe = regexp.MustCompile(`\d{1,3}`)

// AssembleRecords stitches one DisciplineRecord out of each data row and the
// name-only / continuation rows around it.
//
// Surrounding rows are claimed through an ownership arena, so each one feeds
// at most one record: a claimed row is re-labeled unknown and never
// revisited. A continuation row bracketed by two data rows belongs to the
// earlier one (the forward walk claims it first).
func AssembleRecords(rows []ClassifiedRow) []domain.DisciplineRecord {
	claimed := make([]bool, len(rows))
	var records []domain.DisciplineRecord

	for i := range rows {
		if rows[i].Type != domain.RowData || claimed[i] {
			continue
		}
		claimed[i] = true
		if rec, ok := assembleRecord(rows, claimed, i); ok {
			records = append(records, rec)
		}
	}
	return records
}

func assembleRecord(rows []ClassifiedRow, claimed []bool, i int) (domain.DisciplineRecord, bool) {
	row := &rows[i]

	outcome, ok := domain.ParseOutcome(row.Outcome)
	if !ok {
		// Malformed outcome cell: expected noise, not an error.
		return domain.DisciplineRecord{}, false
	}

	name, professor := splitProfessor(row.Content)

	if name == "" {
		name = collectNameAbove(rows, claimed, i)
	}
	professor = appendContinuationsBelow(rows, claimed, i, professor)

	rec := domain.DisciplineRecord{
		Kind:        domain.RecordRegular,
		Name:        CleanName(name),
		Code:        strings.ToUpper(strings.TrimSpace(row.Code)),
		Outcome:     outcome,
		Grade:       normalizeGrade(row.Grade),
		CreditHours: parseHours(row.CreditHours),
		Period:      normalizePeriod(row.Period),
		Section:     strings.TrimSpace(row.Section),
		Attendance:  normalizeAttendance(row.Attendance),
		Professor:   strings.TrimSpace(professor),
		Annotations: strings.TrimSpace(row.Symbol),
	}
	return rec, true
}

// collectNameAbove walks backward over immediately preceding name-only and
// continuation rows, claiming each, and joins the name-only texts most
// distant first (the order the wrapped name was printed in).
func collectNameAbove(rows []ClassifiedRow, claimed []bool, i int) string {
	var parts []string
	for j := i - 1; j >= 0; j-- {
		if claimed[j] {
			break
		}
		t := rows[j].Type
		if t != domain.RowNameOnly && t != domain.RowContinuation {
			break
		}
		claimed[j] = true
		rows[j].Type = domain.RowUnknown
		if t == domain.RowNameOnly {
			parts = append(parts, rows[j].Content)
		}
	}
	// Collected nearest-first; the wrapped name reads top-down.
	for k, l := 0, len(parts)-1; k < l; k, l = k+1, l-1 {
		parts[k], parts[l] = parts[l], parts[k]
	}
	return strings.Join(parts, " ")
}

// appendContinuationsBelow claims the continuation rows immediately after
// the data row and appends their text to the professor annotation. The walk
// stops at the first row of any other type, so a continuation between two
// data rows attaches to the nearer one in document order.
func appendContinuationsBelow(rows []ClassifiedRow, claimed []bool, i int, professor string) string {
	for j := i + 1; j < len(rows); j++ {
		if claimed[j] || rows[j].Type != domain.RowContinuation {
			break
		}
		claimed[j] = true
		rows[j].Type = domain.RowUnknown
		if professor == "" {
			professor = rows[j].Content
		} else {
			professor += " " + rows[j].Content
		}
	}
	return professor
}

func splitProfessor(content string) (name, professor string) {
	content = strings.TrimSpace(content)
	loc := titleRe.FindStringIndex(content)
	if loc == nil {
		return content, ""
	}
	return strings.TrimSpace(content[:loc[0]]), strings.TrimSpace(content[loc[0]:])
}

// normalizePeriod keeps a well-formed term token; a bare dash placeholder
// denotes a credited-without-date attempt and maps to the empty string.
func normalizePeriod(p string) string {
	p = strings.TrimSpace(p)
	if placeholderRe.MatchString(p) {
		return ""
	}
	return p
}

func normalizeGrade(g string) string {
	g = strings.TrimSpace(g)
	if g == "" || placeholderRe.MatchString(g) {
		return domain.NoGrade
	}
	return g
}

func normalizeAttendance(a string) string {
	a = strings.TrimSpace(a)
	if placeholderRe.MatchString(a) {
		return ""
	}
	return a
}

func parseHours(s string) int {
	m := digitsRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}

// CleanName strips non-alphanumeric boundary characters and restores the
// spaces the glyph-to-string reconstruction loses at letter/digit and
// lower/upper transitions.
func CleanName(name string) string {
	name = strings.TrimFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if name == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLetter(prev) && unicode.IsDigit(r),
				unicode.IsDigit(prev) && unicode.IsLetter(r),
				unicode.IsLower(prev) && unicode.IsUpper(r):
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
