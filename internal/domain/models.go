package domain

import (
	"time"

	"github.com/google/uuid"
)

// PositionedFragment is one glyph run placed on a page by the document
// renderer. It has no identity beyond its position.
type PositionedFragment struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
}

// Page is the ordered fragment list for one transcript page.
type Page struct {
	Number    int                  `json:"number"`
	Fragments []PositionedFragment `json:"fragments"`
}

// TranscriptDocument is the engine's sole input: the rendered pages of one
// histórico escolar.
type TranscriptDocument struct {
	Pages []Page `json:"pages"`
}

// NoGrade is the sentinel stored when the transcript prints a dash run
// instead of a grade.
const NoGrade = "-"

// DisciplineRecord is one normalized academic-attempt record extracted from
// the transcript. Immutable once built.
type DisciplineRecord struct {
	Kind        RecordKind `json:"kind"`
	Name        string     `json:"name"`
	Code        string     `json:"code"`
	Outcome     Outcome    `json:"outcome"`
	Grade       string     `json:"grade"`
	CreditHours int        `json:"credit_hours"`
	Period      string     `json:"period"`
	Section     string     `json:"section"`
	Attendance  string     `json:"attendance"`
	Professor   string     `json:"professor"`
	// Annotations carries the symbol-column markers printed beside the row,
	// e.g. the "e" flag on attempts credited through equivalency.
	Annotations string `json:"annotations"`
}

// TranscriptMetadata holds the document-level scalars extracted outside the
// row pipeline. Fields the patterns fail to match stay empty or nil.
type TranscriptMetadata struct {
	ProgramName     string   `json:"program_name"`
	CatalogToken    string   `json:"catalog_token"`
	WeightedAverage *float64 `json:"weighted_average"`
	CompositeIndex  *float64 `json:"composite_index"`
	SuspendedTerms  []string `json:"suspended_terms"`
	CurrentTerm     string   `json:"current_term"`
	TermCount       int      `json:"term_count"`
}

// Transcript bundles the extraction output handed to reconciliation.
type Transcript struct {
	Records  []DisciplineRecord `json:"records"`
	Metadata TranscriptMetadata `json:"metadata"`
}

// Catalog is one versioned curriculum (matriz curricular) of a program.
type Catalog struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ProgramName string    `db:"program_name" json:"program_name"`
	Version     string    `db:"version" json:"version"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CurriculumSubject is one subject slot of a catalog. Level 0 marks an
// elective; level >= 1 is the mandatory-track ordinal.
type CurriculumSubject struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CatalogID   uuid.UUID `db:"catalog_id" json:"catalog_id"`
	Code        string    `db:"code" json:"code"`
	Name        string    `db:"name" json:"name"`
	CreditHours int       `db:"credit_hours" json:"credit_hours"`
	Level       int       `db:"level" json:"level"`
}

// IsElective reports whether the subject occupies a free-choice slot.
func (s *CurriculumSubject) IsElective() bool {
	return s.Level == 0
}

// Prerequisite is one dependency edge between catalog subjects.
type Prerequisite struct {
	SubjectID         uuid.UUID `db:"subject_id" json:"subject_id"`
	RequiresSubjectID uuid.UUID `db:"requires_subject_id" json:"requires_subject_id"`
	// Kind is "pre" for a prerequisite, "co" for a co-requisite.
	Kind string `db:"kind" json:"kind"`
}

// EquivalencyRule states which alternate subjects satisfy a catalog
// subject's requirement, as a boolean expression over subject codes.
type EquivalencyRule struct {
	ID              uuid.UUID `db:"id" json:"id"`
	OriginSubjectID uuid.UUID `db:"origin_subject_id" json:"origin_subject_id"`
	OriginCode      string    `db:"origin_code" json:"origin_code"`
	Expression      string    `db:"expression" json:"expression"`
}

// MatchResult pairs one extracted record with its reconciliation outcome.
type MatchResult struct {
	Record  DisciplineRecord   `json:"record"`
	Subject *CurriculumSubject `json:"subject,omitempty"`
	Via     MatchVia           `json:"via"`
}

// CompletedSubject is one mandatory subject satisfied by the transcript,
// either directly or through an equivalency.
type CompletedSubject struct {
	Subject        CurriculumSubject `json:"subject"`
	ViaEquivalency bool              `json:"via_equivalency"`
	SatisfiedBy    []string          `json:"satisfied_by,omitempty"`
}

// ValidationInfo carries the transcript's printed performance scalars next
// to the engine's own tally, for caller-side cross-checks.
type ValidationInfo struct {
	CompositeIndex    *float64 `json:"composite_index"`
	WeightedAverage   *float64 `json:"weighted_average"`
	CreditHoursEarned int      `json:"credit_hours_earned"`
	PendingFlags      []string `json:"pending_flags,omitempty"`
}

// ReconciliationSummary aggregates counts over one reconciliation run.
type ReconciliationSummary struct {
	TotalRecords         int     `json:"total_records"`
	TotalMandatory       int     `json:"total_mandatory"`
	CompletedCount       int     `json:"completed_count"`
	PendingCount         int     `json:"pending_count"`
	ElectiveCount        int     `json:"elective_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ReconciliationResult is the engine's final output. Exactly one of the
// subject partitions holds each mandatory subject of the selected catalog.
// When SelectionRequired is set, only Candidates and Reason are meaningful.
type ReconciliationResult struct {
	SelectionRequired  bool                  `json:"selection_required"`
	Candidates         []Catalog             `json:"candidates,omitempty"`
	Reason             string                `json:"reason,omitempty"`
	Catalog            *Catalog              `json:"catalog,omitempty"`
	MatchedRecords     []MatchResult         `json:"matched_records,omitempty"`
	CompletedMandatory []CompletedSubject    `json:"completed_mandatory,omitempty"`
	PendingMandatory   []CurriculumSubject   `json:"pending_mandatory,omitempty"`
	RemainingElectives []CurriculumSubject   `json:"remaining_electives,omitempty"`
	Validation         ValidationInfo        `json:"validation"`
	Summary            ReconciliationSummary `json:"summary"`
	Metadata           TranscriptMetadata    `json:"metadata"`
}

// User is an authenticated account.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
