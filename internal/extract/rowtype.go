package extract

import (
	"regexp"
	"strings"
	"unicode"

	"academico/internal/domain"
)

// ClassifiedRow is a collated row plus its column split and row type.
type ClassifiedRow struct {
	Row
	Period      string
	Symbol      string
	Code        string
	Content     string
	CreditHours string
	Section     string
	Attendance  string
	Grade       string
	Outcome     string
	Type        domain.RowType
}

var (
	periodRe = regexp.MustCompile(`^\d{4}\.\d$`)
	codeRe   = regexp.MustCompile(`^[A-Z]{2,4}\s?\d{3,4}[A-Z]?$`)
	hoursRe  = regexp.MustCompile(`^\d{1,3}\s*h?$`)
	// A wrapped professor annotation carries a parenthetical hour share,
	// e.g. "(30h)", at its end.
	professorHoursRe = regexp.MustCompile(`\(\s*\d{1,3}\s*h\s*\)\s*$`)
	placeholderRe    = regexp.MustCompile(`^-+$`)
)

// academicTitles are the title prefixes that open a professor annotation.
var academicTitles = []string{"DR.", "DRA.", "MSC.", "ME.", "ESP.", "PROF.", "PROFA."}

// headerVocabulary marks the table header row.
var headerVocabulary = []string{
	"COMPONENTE CURRICULAR",
	"ANO/PERIODO",
	"CH TURMA",
	"TURMA FREQ",
	"NOTA SITUACAO",
}

// boilerplate matches institutional letterhead, legends, section titles and
// footer text that must never be mistaken for data.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`^UNIVERSIDADE`),
	regexp.MustCompile(`^PRO-?REITORIA`),
	regexp.MustCompile(`HISTORICO ESCOLAR`),
	regexp.MustCompile(`^LEGENDA`),
	regexp.MustCompile(`^EMITIDO`),
	regexp.MustCompile(`^PAGINA\s+\d`),
	regexp.MustCompile(`^CURSO[:\s]`),
	regexp.MustCompile(`^MATRIZ CURRICULAR`),
	regexp.MustCompile(`^CURRICULO`),
	regexp.MustCompile(`^MATRICULA[:\s]`),
	regexp.MustCompile(`^NOME[:\s]`),
	regexp.MustCompile(`^MEDIA PONDERADA`),
	regexp.MustCompile(`^INDICE DE RENDIMENTO`),
	regexp.MustCompile(`^IRA[:\s]`),
	regexp.MustCompile(`^MP[:\s]`),
	regexp.MustCompile(`^TRANCAMENTO`),
	regexp.MustCompile(`^COMPONENTES CURRICULARES`),
	regexp.MustCompile(`^OBSERVACOES`),
	regexp.MustCompile(`^ASSINATURA`),
	regexp.MustCompile(`^AUTENTICACAO`),
}

// ClassifyRows splits each row into columns and labels it. First match wins,
// in the documented decision order.
func ClassifyRows(rows []Row, bounds ColumnBounds) []ClassifiedRow {
	out := make([]ClassifiedRow, 0, len(rows))
	for i := range rows {
		out = append(out, classifyRow(&rows[i], bounds))
	}
	return out
}

func classifyRow(row *Row, bounds ColumnBounds) ClassifiedRow {
	cols := splitColumns(row, bounds)
	cr := ClassifiedRow{
		Row:         *row,
		Period:      cols[ColPeriod],
		Symbol:      cols[ColSymbol],
		Code:        strings.ReplaceAll(cols[ColCode], " ", ""),
		Content:     cols[ColContent],
		CreditHours: cols[ColCreditHours],
		Section:     cols[ColSection],
		Attendance:  cols[ColAttendance],
		Grade:       cols[ColGrade],
		Outcome:     cols[ColOutcome],
	}
	cr.Type = rowType(&cr)
	return cr
}

func rowType(cr *ClassifiedRow) domain.RowType {
	line := domain.NormalizeToken(cr.Text())

	for _, v := range headerVocabulary {
		if strings.Contains(line, v) {
			return domain.RowHeader
		}
	}
	for _, re := range boilerplate {
		if re.MatchString(line) {
			return domain.RowMetadata
		}
	}

	hasAnchor := hasPeriodOrCode(cr)
	if hasAnchor {
		if _, ok := domain.ParseOutcome(cr.Outcome); ok {
			return domain.RowData
		}
		// Merged or malformed outcome cell; hours alone still anchor a
		// best-effort data row.
		if hoursRe.MatchString(strings.TrimSpace(cr.CreditHours)) {
			return domain.RowData
		}
	}

	onlyContent := cr.Content != "" &&
		cr.Period == "" && cr.Code == "" &&
		cr.CreditHours == "" && cr.Outcome == ""
	if onlyContent {
		if isProfessorAnnotation(cr.Content) {
			return domain.RowContinuation
		}
		if startsUpper(cr.Content) && len([]rune(cr.Content)) > 2 {
			return domain.RowNameOnly
		}
	}
	return domain.RowUnknown
}

func hasPeriodOrCode(cr *ClassifiedRow) bool {
	p := strings.TrimSpace(cr.Period)
	if periodRe.MatchString(p) || placeholderRe.MatchString(p) {
		return true
	}
	return codeRe.MatchString(strings.TrimSpace(cr.Code))
}

func isProfessorAnnotation(content string) bool {
	if professorHoursRe.MatchString(content) {
		return true
	}
	up := domain.NormalizeToken(content)
	for _, t := range academicTitles {
		if strings.HasPrefix(up, t) {
			return true
		}
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
