package reconcile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"academico/internal/domain"
	"academico/mocks"
)

// fixture is a small program catalog: three mandatory subjects, two
// electives and two equivalency rules for the theory subject.
type fixture struct {
	repo   *mocks.MockCatalogRepo
	engine *Engine

	catalog   domain.Catalog
	intro     domain.CurriculumSubject
	calculus  domain.CurriculumSubject
	theory    domain.CurriculumSubject
	electiveA domain.CurriculumSubject
	electiveB domain.CurriculumSubject

	mandatory []domain.CurriculumSubject
	electives []domain.CurriculumSubject
	rules     []domain.EquivalencyRule
}

func newFixture() *fixture {
	f := &fixture{repo: new(mocks.MockCatalogRepo)}
	f.engine = NewEngine(f.repo)

	f.catalog = domain.Catalog{ID: uuid.New(), ProgramName: "ENGENHARIA DE SOFTWARE", Version: "2019.1"}
	subject := func(code, name string, level int) domain.CurriculumSubject {
		return domain.CurriculumSubject{
			ID: uuid.New(), CatalogID: f.catalog.ID,
			Code: code, Name: name, CreditHours: 60, Level: level,
		}
	}
	f.intro = subject("ABC101", "INTRODUCAO A PROGRAMACAO", 1)
	f.calculus = subject("MAT101", "CALCULO I", 1)
	f.theory = subject("XYZ300", "TEORIA DA COMPUTACAO", 3)
	f.electiveA = subject("ELE100", "TOPICOS ESPECIAIS I", 0)
	f.electiveB = subject("ELE200", "TOPICOS ESPECIAIS II", 0)

	f.mandatory = []domain.CurriculumSubject{f.intro, f.calculus, f.theory}
	f.electives = []domain.CurriculumSubject{f.electiveA, f.electiveB}
	f.rules = []domain.EquivalencyRule{
		{ID: uuid.New(), OriginSubjectID: f.theory.ID, OriginCode: f.theory.Code, Expression: "ELE100 AND ELE200"},
		{ID: uuid.New(), OriginSubjectID: f.theory.ID, OriginCode: f.theory.Code, Expression: "OLD300"},
	}
	return f
}

// expectFullRun stubs the catalog reads of a hint-driven run without
// sibling catalogs.
func (f *fixture) expectFullRun() {
	f.repo.On("GetByID", mock.Anything, f.catalog.ID).Return(&f.catalog, nil)
	f.repo.On("GetMandatorySubjects", mock.Anything, f.catalog.ID).Return(f.mandatory, nil)
	f.repo.On("GetElectiveSubjects", mock.Anything, f.catalog.ID).Return(f.electives, nil)
	f.repo.On("GetEquivalencyRules", mock.Anything, mock.Anything).Return(f.rules, nil)
	f.repo.On("GetCatalogVersionsForProgram", mock.Anything, f.catalog.ProgramName).
		Return([]domain.Catalog{f.catalog}, nil)
}

func record(code string, outcome domain.Outcome) domain.DisciplineRecord {
	return domain.DisciplineRecord{Kind: domain.RecordRegular, Code: code, Outcome: outcome, CreditHours: 60}
}

func transcript(records ...domain.DisciplineRecord) *domain.Transcript {
	return &domain.Transcript{Records: records}
}

func completedCodes(result *domain.ReconciliationResult) []string {
	var codes []string
	for _, c := range result.CompletedMandatory {
		codes = append(codes, c.Subject.Code)
	}
	return codes
}

func pendingCodes(result *domain.ReconciliationResult) []string {
	var codes []string
	for _, s := range result.PendingMandatory {
		codes = append(codes, s.Code)
	}
	return codes
}

func TestReconcile_DirectCodeMatch(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("ABC101", domain.OutcomeApproved),
		record("MAT101", domain.OutcomeEnrolled),
	), &f.catalog.ID)
	require.NoError(t, err)

	assert.False(t, res.SelectionRequired)
	assert.Equal(t, []string{"ABC101"}, completedCodes(res))
	assert.Equal(t, []string{"MAT101", "XYZ300"}, pendingCodes(res))
	require.Len(t, res.MatchedRecords, 2)
	assert.Equal(t, domain.MatchViaCode, res.MatchedRecords[0].Via)
	assert.InDelta(t, 1.0/3.0, res.Summary.CompletionPercentage, 0.001)
	assert.Len(t, res.RemainingElectives, 2)
	assert.Equal(t, 60, res.Validation.CreditHoursEarned)
}

func TestReconcile_NameMatchFallback(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	rec := record("OLD999", domain.OutcomeApproved)
	rec.Name = "Cálculo I"

	res, err := f.engine.Reconcile(context.Background(), transcript(rec), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.MatchedRecords, 1)
	assert.Equal(t, domain.MatchViaName, res.MatchedRecords[0].Via)
	assert.Equal(t, []string{"MAT101"}, completedCodes(res))
}

func TestReconcile_CrossCatalogFallback(t *testing.T) {
	f := newFixture()
	sibling := domain.Catalog{ID: uuid.New(), ProgramName: f.catalog.ProgramName, Version: "2015.1"}
	siblingSubject := domain.CurriculumSubject{
		ID: uuid.New(), CatalogID: sibling.ID, Code: "OLD101", Name: "PROGRAMACAO ANTIGA", Level: 1,
	}

	f.repo.On("GetByID", mock.Anything, f.catalog.ID).Return(&f.catalog, nil)
	f.repo.On("GetMandatorySubjects", mock.Anything, f.catalog.ID).Return(f.mandatory, nil)
	f.repo.On("GetElectiveSubjects", mock.Anything, f.catalog.ID).Return(f.electives, nil)
	f.repo.On("GetEquivalencyRules", mock.Anything, mock.Anything).Return(f.rules, nil)
	f.repo.On("GetCatalogVersionsForProgram", mock.Anything, f.catalog.ProgramName).
		Return([]domain.Catalog{f.catalog, sibling}, nil)
	f.repo.On("GetMandatorySubjects", mock.Anything, sibling.ID).
		Return([]domain.CurriculumSubject{siblingSubject}, nil)
	f.repo.On("GetElectiveSubjects", mock.Anything, sibling.ID).
		Return([]domain.CurriculumSubject{}, nil)

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("OLD101", domain.OutcomeApproved),
	), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.MatchedRecords, 1)
	m := res.MatchedRecords[0]
	assert.Equal(t, domain.MatchViaCrossCatalog, m.Via)
	require.NotNil(t, m.Subject)
	assert.Equal(t, sibling.ID, m.Subject.CatalogID)
	// A sibling-catalog subject never completes a target-catalog slot.
	assert.Empty(t, completedCodes(res))
	assert.Len(t, res.PendingMandatory, 3)
}

func TestReconcile_EquivalencyMatch(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("OLD300", domain.OutcomeApproved),
	), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.MatchedRecords, 1)
	assert.Equal(t, domain.MatchViaEquivalency, res.MatchedRecords[0].Via)

	require.Len(t, res.CompletedMandatory, 1)
	cs := res.CompletedMandatory[0]
	assert.Equal(t, "XYZ300", cs.Subject.Code)
	assert.True(t, cs.ViaEquivalency)
	assert.Equal(t, []string{"OLD300"}, cs.SatisfiedBy)
}

// Two completed electives satisfy the theory subject's AND rule; the
// electives are consumed and leave the remaining pool.
func TestReconcile_EquivalencyPostPassConsumesElectives(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("ELE100", domain.OutcomeApproved),
		record("ELE200", domain.OutcomeApproved),
	), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.CompletedMandatory, 1)
	cs := res.CompletedMandatory[0]
	assert.Equal(t, "XYZ300", cs.Subject.Code)
	assert.True(t, cs.ViaEquivalency)
	assert.Equal(t, []string{"ELE100", "ELE200"}, cs.SatisfiedBy)
	assert.Empty(t, res.RemainingElectives)
}

// An OR rule satisfied by more than one completed record credits only the
// record of the most recent term.
func TestReconcile_EquivalencyMostRecentAlternativeWins(t *testing.T) {
	f := newFixture()
	f.rules = []domain.EquivalencyRule{
		{ID: uuid.New(), OriginSubjectID: f.theory.ID, OriginCode: f.theory.Code, Expression: "ELE100 OR ELE200"},
	}
	f.expectFullRun()

	older := record("ELE100", domain.OutcomeApproved)
	older.Period = "2019.1"
	newer := record("ELE200", domain.OutcomeApproved)
	newer.Period = "2021.2"

	res, err := f.engine.Reconcile(context.Background(), transcript(older, newer), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.CompletedMandatory, 1)
	cs := res.CompletedMandatory[0]
	assert.Equal(t, "XYZ300", cs.Subject.Code)
	assert.True(t, cs.ViaEquivalency)
	assert.Equal(t, []string{"ELE200"}, cs.SatisfiedBy)
}

// Same rule, opposite chronology: the reduction follows the terms, not the
// expression order.
func TestReconcile_EquivalencyMostRecentAlternativeWins_Reversed(t *testing.T) {
	f := newFixture()
	f.rules = []domain.EquivalencyRule{
		{ID: uuid.New(), OriginSubjectID: f.theory.ID, OriginCode: f.theory.Code, Expression: "ELE100 OR ELE200"},
	}
	f.expectFullRun()

	newer := record("ELE100", domain.OutcomeApproved)
	newer.Period = "2022.1"
	older := record("ELE200", domain.OutcomeApproved)
	older.Period = "2020.2"

	res, err := f.engine.Reconcile(context.Background(), transcript(newer, older), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.CompletedMandatory, 1)
	assert.Equal(t, []string{"ELE100"}, res.CompletedMandatory[0].SatisfiedBy)
}

// A subject some record matched without completing stays pending; the
// equivalency post-pass covers only subjects no record reached at all.
func TestReconcile_EquivalencyPostPassSkipsMatchedSubject(t *testing.T) {
	f := newFixture()
	f.rules = []domain.EquivalencyRule{
		{ID: uuid.New(), OriginSubjectID: f.theory.ID, OriginCode: f.theory.Code, Expression: "ELE100"},
	}
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("XYZ300", domain.OutcomeEnrolled),
		record("ELE100", domain.OutcomeApproved),
	), &f.catalog.ID)
	require.NoError(t, err)

	assert.Empty(t, completedCodes(res))
	assert.Contains(t, pendingCodes(res), "XYZ300")
	require.Len(t, res.RemainingElectives, 1)
	assert.Equal(t, "ELE200", res.RemainingElectives[0].Code)
}

func TestReconcile_DuplicateKeepsHighestPriorityOutcome(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	failed := record("ABC101", domain.OutcomeFailed)
	failed.Period = "2019.1"
	approved := record("ABC101", domain.OutcomeApproved)
	approved.Period = "2020.1"

	res, err := f.engine.Reconcile(context.Background(), transcript(failed, approved), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.MatchedRecords, 1)
	assert.Equal(t, domain.OutcomeApproved, res.MatchedRecords[0].Record.Outcome)
	assert.Equal(t, []string{"ABC101"}, completedCodes(res))
}

func TestResolveDuplicates_TieKeepsEarliestSeen(t *testing.T) {
	subject := &domain.CurriculumSubject{ID: uuid.New(), Code: "ABC101"}
	first := domain.MatchResult{Record: record("ABC101", domain.OutcomeApproved), Subject: subject, Via: domain.MatchViaCode}
	first.Record.Period = "2019.1"
	second := first
	second.Record.Period = "2020.1"
	unmatched := domain.MatchResult{Record: record("ZZZ999", domain.OutcomeApproved), Via: domain.MatchViaNone}

	out := resolveDuplicates([]domain.MatchResult{first, second, unmatched})

	require.Len(t, out, 2)
	assert.Equal(t, "2019.1", out[0].Record.Period)
	assert.Equal(t, "ZZZ999", out[1].Record.Code)
}

func TestOutcomePriority(t *testing.T) {
	assert.Equal(t, 2, outcomePriority(domain.OutcomeApproved))
	assert.Equal(t, 2, outcomePriority(domain.OutcomeExempted))
	assert.Equal(t, 2, outcomePriority(domain.OutcomeCredited))
	assert.Equal(t, 1, outcomePriority(domain.OutcomeEnrolled))
	assert.Equal(t, 0, outcomePriority(domain.OutcomeFailed))
	assert.Equal(t, 0, outcomePriority(domain.OutcomeWithdrawn))
}

func TestReconcile_UnmatchedRecordStaysObservable(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("NAO0001", domain.OutcomeApproved),
	), &f.catalog.ID)
	require.NoError(t, err)

	require.Len(t, res.MatchedRecords, 1)
	assert.Equal(t, domain.MatchViaNone, res.MatchedRecords[0].Via)
	assert.Nil(t, res.MatchedRecords[0].Subject)
}

func TestReconcile_PendingFlags(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(
		record("ABC101", domain.OutcomeApproved),
		domain.DisciplineRecord{Kind: domain.RecordPending, Code: "XYZ300"},
	), &f.catalog.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"XYZ300"}, res.Validation.PendingFlags)
	// Pending entries are requirements, not attempts.
	assert.Len(t, res.MatchedRecords, 1)
	assert.Equal(t, 2, res.Summary.TotalRecords)
}

func TestReconcile_ZeroMandatorySubjects(t *testing.T) {
	f := newFixture()
	f.mandatory = nil
	f.electives = nil
	f.rules = nil
	f.expectFullRun()

	res, err := f.engine.Reconcile(context.Background(), transcript(), &f.catalog.ID)
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Summary.CompletionPercentage)
	assert.Equal(t, 0, res.Summary.TotalMandatory)
}

func TestReconcile_SelectionRequired_NoProgramName(t *testing.T) {
	f := newFixture()
	all := []domain.Catalog{f.catalog}
	f.repo.On("ListCatalogs", mock.Anything).Return(all, nil)

	res, err := f.engine.Reconcile(context.Background(), transcript(), nil)
	require.NoError(t, err)

	assert.True(t, res.SelectionRequired)
	assert.Equal(t, all, res.Candidates)
	assert.NotEmpty(t, res.Reason)
}

func TestReconcile_SelectionRequired_AmbiguousVersions(t *testing.T) {
	f := newFixture()
	older := domain.Catalog{ID: uuid.New(), ProgramName: f.catalog.ProgramName, Version: "2015.1"}
	versions := []domain.Catalog{older, f.catalog}
	f.repo.On("GetCatalogVersionsForProgram", mock.Anything, f.catalog.ProgramName).Return(versions, nil)

	tr := transcript()
	tr.Metadata.ProgramName = f.catalog.ProgramName

	res, err := f.engine.Reconcile(context.Background(), tr, nil)
	require.NoError(t, err)

	assert.True(t, res.SelectionRequired)
	assert.Equal(t, versions, res.Candidates)
}

func TestReconcile_CatalogTokenSelectsVersion(t *testing.T) {
	f := newFixture()
	older := domain.Catalog{ID: uuid.New(), ProgramName: f.catalog.ProgramName, Version: "2015.1"}
	f.repo.On("GetCatalogVersionsForProgram", mock.Anything, f.catalog.ProgramName).
		Return([]domain.Catalog{older, f.catalog}, nil)
	f.repo.On("GetMandatorySubjects", mock.Anything, f.catalog.ID).Return(f.mandatory, nil)
	f.repo.On("GetElectiveSubjects", mock.Anything, f.catalog.ID).Return(f.electives, nil)
	f.repo.On("GetEquivalencyRules", mock.Anything, mock.Anything).Return(f.rules, nil)
	f.repo.On("GetMandatorySubjects", mock.Anything, older.ID).Return([]domain.CurriculumSubject{}, nil)
	f.repo.On("GetElectiveSubjects", mock.Anything, older.ID).Return([]domain.CurriculumSubject{}, nil)

	tr := transcript(record("ABC101", domain.OutcomeApproved))
	tr.Metadata.ProgramName = f.catalog.ProgramName
	tr.Metadata.CatalogToken = "2019.1"

	res, err := f.engine.Reconcile(context.Background(), tr, nil)
	require.NoError(t, err)

	assert.False(t, res.SelectionRequired)
	require.NotNil(t, res.Catalog)
	assert.Equal(t, f.catalog.ID, res.Catalog.ID)
	assert.Equal(t, []string{"ABC101"}, completedCodes(res))
}

func TestReconcile_HintWinsOverMetadata(t *testing.T) {
	f := newFixture()
	f.expectFullRun()

	tr := transcript(record("ABC101", domain.OutcomeApproved))
	tr.Metadata.ProgramName = "OUTRO CURSO QUALQUER"

	res, err := f.engine.Reconcile(context.Background(), tr, &f.catalog.ID)
	require.NoError(t, err)

	require.NotNil(t, res.Catalog)
	assert.Equal(t, f.catalog.ID, res.Catalog.ID)
	f.repo.AssertNotCalled(t, "GetCatalogVersionsForProgram", mock.Anything, "OUTRO CURSO QUALQUER")
}

func TestReconcile_HintNotFound(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.repo.On("GetByID", mock.Anything, missing).Return(nil, domain.ErrCatalogNotFound)

	_, err := f.engine.Reconcile(context.Background(), transcript(), &missing)
	assert.ErrorIs(t, err, domain.ErrCatalogNotFound)
}
