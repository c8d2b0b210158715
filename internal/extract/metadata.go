package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"academico/internal/domain"
)

// Each metadata field tries its patterns in priority order and takes the
// first match. A field no pattern matches stays unset; metadata absence
// never aborts record extraction.
var (
	programPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)Curso:\s*([^\n]+?)\s*(?:-\s*(?:Bacharelado|Licenciatura|Tecnologo)\b[^\n]*)?$`),
		regexp.MustCompile(`(?im)^Curso\s*[-–]\s*([^\n]+)$`),
		regexp.MustCompile(`(?i)CURSO DE\s+([A-ZÀ-Ú ]{4,})`),
	}
	catalogTokenPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Matriz\s+Curricular:?\s*(\d{4}\.\d)`),
		regexp.MustCompile(`(?i)Curr[ií]culo:?\s*(\d{4}\.\d)`),
		regexp.MustCompile(`(?i)Curr[ií]culo:?\s*([0-9][0-9./-]*)`),
	}
	weightedAvgPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)M[ée]dia\s+Ponderada:?\s*([\d]+[.,]\d+)`),
		regexp.MustCompile(`(?im)^MP:?\s*([\d]+[.,]\d+)`),
	}
	compositeIdxPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[ÍI]ndice\s+de\s+Rendimento\s+Acad[êe]mico:?\s*([\d]+[.,]\d+)`),
		regexp.MustCompile(`(?im)^IRA:?\s*([\d]+[.,]\d+)`),
	}
	suspendedTermRe = regexp.MustCompile(`(?i)Trancamento[^\d\n]*(\d{4}\.\d)`)

	termRe = regexp.MustCompile(`^(\d{4})\.(\d)$`)
)

// ExtractMetadata pulls the document-level scalars from the flattened text.
// It is independent of the row pipeline.
func ExtractMetadata(text string) domain.TranscriptMetadata {
	md := domain.TranscriptMetadata{
		ProgramName:  strings.TrimSpace(firstMatch(programPatterns, text)),
		CatalogToken: firstMatch(catalogTokenPatterns, text),
	}
	if v, ok := parseDecimal(firstMatch(weightedAvgPatterns, text)); ok {
		md.WeightedAverage = &v
	}
	if v, ok := parseDecimal(firstMatch(compositeIdxPatterns, text)); ok {
		md.CompositeIndex = &v
	}
	for _, m := range suspendedTermRe.FindAllStringSubmatch(text, -1) {
		md.SuspendedTerms = append(md.SuspendedTerms, m[1])
	}
	return md
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func parseDecimal(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DeriveTermStats computes the two summary fields that come from the record
// list rather than from patterns: the current term (most recent among
// enrolled attempts) and the term count (distinct terms with a conclusive
// outcome, plus one).
func DeriveTermStats(records []domain.DisciplineRecord) (currentTerm string, termCount int) {
	concluded := map[string]bool{}
	for _, r := range records {
		if r.Kind != domain.RecordRegular || r.Period == "" {
			continue
		}
		if r.Outcome.IsEnrolled() && laterTerm(r.Period, currentTerm) {
			currentTerm = r.Period
		}
		if r.Outcome.IsConclusive() {
			concluded[r.Period] = true
		}
	}
	return currentTerm, len(concluded) + 1
}

// laterTerm compares terms chronologically, year first then sub-period.
func laterTerm(a, b string) bool {
	if b == "" {
		return true
	}
	ay, as, aok := splitTerm(a)
	by, bs, bok := splitTerm(b)
	if !aok || !bok {
		return aok
	}
	if ay != by {
		return ay > by
	}
	return as > bs
}

func splitTerm(t string) (year, sub int, ok bool) {
	m := termRe.FindStringSubmatch(t)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	sub, _ = strconv.Atoi(m[2])
	return year, sub, true
}

// MostRecentTerm returns the chronologically latest of the given terms.
func MostRecentTerm(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return laterTerm(sorted[i], sorted[j]) })
	return sorted[0]
}
