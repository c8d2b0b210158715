package domain

import "strings"

// Outcome is the result of one subject attempt as printed on the transcript.
type Outcome string

const (
	OutcomeApproved       Outcome = "APROVADO"
	OutcomeFailed         Outcome = "REPROVADO"
	OutcomeFailedAbsence  Outcome = "REPROVADO POR FALTA"
	OutcomeFailedGradeAbs Outcome = "REPROVADO POR MEDIA E POR FALTA"
	OutcomeCancelled      Outcome = "CANCELADO"
	OutcomeExempted       Outcome = "DISPENSADO"
	OutcomeWithdrawn      Outcome = "TRANCADO"
	OutcomeEnrolled       Outcome = "MATRICULADO"
	OutcomeCredited       Outcome = "APROVEITAMENTO"
)

// outcomeAliases maps normalized transcript tokens to outcomes. The source
// system prints several spellings for the same situation across layout
// versions.
var outcomeAliases = map[string]Outcome{
	"APROVADO":                        OutcomeApproved,
	"APR":                             OutcomeApproved,
	"REPROVADO":                       OutcomeFailed,
	"REP":                             OutcomeFailed,
	"REPROVADO POR FALTA":             OutcomeFailedAbsence,
	"REPROVADO POR FREQUENCIA":        OutcomeFailedAbsence,
	"REPF":                            OutcomeFailedAbsence,
	"REPROVADO POR MEDIA E POR FALTA": OutcomeFailedGradeAbs,
	"REPROVADO POR NOTA E FALTA":      OutcomeFailedGradeAbs,
	"REPMF":                           OutcomeFailedGradeAbs,
	"CANCELADO":                       OutcomeCancelled,
	"CANC":                            OutcomeCancelled,
	"DISPENSADO":                      OutcomeExempted,
	"DISP":                            OutcomeExempted,
	"TRANCADO":                        OutcomeWithdrawn,
	"TRANC":                           OutcomeWithdrawn,
	"MATRICULADO":                     OutcomeEnrolled,
	"MATR":                            OutcomeEnrolled,
	"APROVEITAMENTO":                  OutcomeCredited,
	"APROVEITAMENTO DE ESTUDOS":       OutcomeCredited,
	"CUMPRIU":                         OutcomeCredited,
}

// accentFold strips the Latin-1 accented letters the source system emits.
var accentFold = strings.NewReplacer(
	"Á", "A", "À", "A", "Â", "A", "Ã", "A",
	"É", "E", "Ê", "E",
	"Í", "I",
	"Ó", "O", "Ô", "O", "Õ", "O",
	"Ú", "U", "Ü", "U",
	"Ç", "C",
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
)

// NormalizeToken uppercases, accent-folds and collapses inner whitespace.
func NormalizeToken(s string) string {
	s = strings.ToUpper(accentFold.Replace(strings.TrimSpace(s)))
	return strings.Join(strings.Fields(s), " ")
}

// ParseOutcome resolves a raw transcript token to an Outcome.
// Returns false for tokens outside the known enumeration.
func ParseOutcome(raw string) (Outcome, bool) {
	o, ok := outcomeAliases[NormalizeToken(raw)]
	return o, ok
}

// IsCompleted reports whether the outcome counts as having completed the
// subject (the "completed family" used for duplicate priority and credit).
func (o Outcome) IsCompleted() bool {
	switch o {
	case OutcomeApproved, OutcomeExempted, OutcomeCredited:
		return true
	}
	return false
}

// IsEnrolled reports whether the attempt is still in progress.
func (o Outcome) IsEnrolled() bool {
	return o == OutcomeEnrolled
}

// IsConclusive reports whether the attempt finished, in any direction.
// Enrolled and withdrawn terms do not count toward the term tally.
func (o Outcome) IsConclusive() bool {
	return o != OutcomeEnrolled && o != OutcomeWithdrawn
}

// RecordKind distinguishes attempt records from pending-requirement entries.
type RecordKind string

const (
	RecordRegular RecordKind = "regular"
	RecordPending RecordKind = "pending"
)

// RowType labels one collated transcript row.
type RowType string

const (
	RowData         RowType = "data"
	RowNameOnly     RowType = "name-only"
	RowContinuation RowType = "continuation"
	RowHeader       RowType = "header"
	RowMetadata     RowType = "metadata"
	RowUnknown      RowType = "unknown"
)

// MatchVia records which strategy matched a record to a catalog subject.
type MatchVia string

const (
	MatchViaCode         MatchVia = "code"
	MatchViaName         MatchVia = "name"
	MatchViaCrossCatalog MatchVia = "cross-catalog"
	MatchViaEquivalency  MatchVia = "equivalency"
	MatchViaNone         MatchVia = "none"
)

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleStudent UserRole = "student"
)
