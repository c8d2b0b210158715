package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "SITUACAO", NormalizeToken("Situação"))
	assert.Equal(t, "HISTORICO ESCOLAR", NormalizeToken("  Histórico   Escolar  "))
	assert.Equal(t, "MEDIA", NormalizeToken("média"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		raw  string
		want Outcome
	}{
		{"APROVADO", OutcomeApproved},
		{"Aprovado", OutcomeApproved},
		{"APR", OutcomeApproved},
		{"REPROVADO POR FALTA", OutcomeFailedAbsence},
		{"Reprovado  por  Média e por Falta", OutcomeFailedGradeAbs},
		{"TRANC", OutcomeWithdrawn},
		{"Aproveitamento de Estudos", OutcomeCredited},
		{"CUMPRIU", OutcomeCredited},
		{"DISP", OutcomeExempted},
	}
	for _, tc := range tests {
		got, ok := ParseOutcome(tc.raw)
		require.True(t, ok, "raw %q", tc.raw)
		assert.Equal(t, tc.want, got, "raw %q", tc.raw)
	}

	_, ok := ParseOutcome("EM ANALISE")
	assert.False(t, ok)
	_, ok = ParseOutcome("")
	assert.False(t, ok)
}

func TestOutcomeFamilies(t *testing.T) {
	assert.True(t, OutcomeApproved.IsCompleted())
	assert.True(t, OutcomeExempted.IsCompleted())
	assert.True(t, OutcomeCredited.IsCompleted())
	assert.False(t, OutcomeFailed.IsCompleted())
	assert.False(t, OutcomeEnrolled.IsCompleted())

	assert.True(t, OutcomeEnrolled.IsEnrolled())
	assert.False(t, OutcomeApproved.IsEnrolled())

	assert.False(t, OutcomeEnrolled.IsConclusive())
	assert.False(t, OutcomeWithdrawn.IsConclusive())
	assert.True(t, OutcomeFailed.IsConclusive())
	assert.True(t, OutcomeCancelled.IsConclusive())
}
