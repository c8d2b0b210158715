package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academico/internal/domain"
)

func TestIsDetailedFormat(t *testing.T) {
	detailed := "CALCULO I 96 h Aprovado\nEmenta: limites, derivadas e integrais\n"
	tabular := "2021.1 ABC101 INTRODUCAO 60 01 92.0 8.5 APROVADO\n"

	assert.True(t, IsDetailedFormat(detailed))
	assert.False(t, IsDetailedFormat(tabular))
	assert.False(t, IsDetailedFormat("Ementa: sem situacao por extenso"))
}

func TestParseDetailed(t *testing.T) {
	text := "CALCULO DIFERENCIAL E INTEGRAL I 96 h Aprovado com média: 8,5\n" +
		"Ementa: limites, derivadas e integrais de funções reais.\n" +
		"Período 2019.1 Turma 01 MAT101\n" +
		"Professor: Dr. FULANO DE TAL\n" +
		"FISICA GERAL I 64 h Reprovado por média e por falta\n" +
		"Ementa: cinemática e dinâmica da partícula.\n" +
		"Código FIS110 Período 2019.2\n"

	records := ParseDetailed(text)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, domain.RecordRegular, first.Kind)
	assert.Equal(t, "CALCULO DIFERENCIAL E INTEGRAL I", first.Name)
	assert.Equal(t, 96, first.CreditHours)
	assert.Equal(t, domain.OutcomeApproved, first.Outcome)
	assert.Equal(t, "8.5", first.Grade)
	assert.Equal(t, "2019.1", first.Period)
	assert.Equal(t, "MAT101", first.Code)

	second := records[1]
	assert.Equal(t, domain.OutcomeFailedGradeAbs, second.Outcome)
	assert.Equal(t, domain.NoGrade, second.Grade)
	assert.Equal(t, "FIS110", second.Code)
	assert.Equal(t, "2019.2", second.Period)
}

// A block without its own code must not steal one from past the next header.
func TestParseDetailed_BlockEndsAtNextHeader(t *testing.T) {
	text := "PRIMEIRA DISCIPLINA 60 h Aprovado\n" +
		"Ementa: conteúdo da primeira.\n" +
		"SEGUNDA DISCIPLINA 60 h Aprovado\n" +
		"Código XYZ900 Período 2020.1\n"

	records := ParseDetailed(text)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Code)
	assert.Empty(t, records[0].Period)
	assert.Equal(t, "XYZ900", records[1].Code)
}

func TestMapLongOutcome(t *testing.T) {
	tests := []struct {
		phrase string
		want   domain.Outcome
	}{
		{"Aprovado com média 9,0", domain.OutcomeApproved},
		{"Aprovada", domain.OutcomeApproved},
		{"Reprovado por falta", domain.OutcomeFailedAbsence},
		{"Reprovado por média e por falta", domain.OutcomeFailedGradeAbs},
		{"Reprovado", domain.OutcomeFailed},
		{"Matriculado", domain.OutcomeEnrolled},
		{"Trancada", domain.OutcomeWithdrawn},
		{"Dispensado", domain.OutcomeExempted},
	}
	for _, tc := range tests {
		got, ok := mapLongOutcome(tc.phrase)
		require.True(t, ok, "phrase %q", tc.phrase)
		assert.Equal(t, tc.want, got, "phrase %q", tc.phrase)
	}

	_, ok := mapLongOutcome("Pendente")
	assert.False(t, ok)
}
