package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academico/internal/domain"
)

func TestParsePendingSection(t *testing.T) {
	text := "HISTÓRICO ESCOLAR\n" +
		"COMPONENTES CURRICULARES OBRIGATÓRIOS PENDENTES\n" +
		"ABC0123 ALGORITMOS AVANCADOS 64 h\n" +
		"MAT201 CALCULO II 96\n" +
		"* linha de ruido\n" +
		"FIS330 FISICA MODERNA 60 h\n"

	records := ParsePendingSection(text)
	require.Len(t, records, 3)

	for _, r := range records {
		assert.Equal(t, domain.RecordPending, r.Kind)
	}
	assert.Equal(t, "ABC0123", records[0].Code)
	assert.Equal(t, "ALGORITMOS AVANCADOS", records[0].Name)
	assert.Equal(t, 64, records[0].CreditHours)
	assert.Equal(t, "MAT201", records[1].Code)
	assert.Equal(t, 96, records[1].CreditHours)
	assert.Equal(t, "FIS330", records[2].Code)
}

func TestParsePendingSection_EndsAtNextSection(t *testing.T) {
	text := "COMPONENTES CURRICULARES PENDENTES\n" +
		"ABC0123 ALGORITMOS 64 h\n" +
		"OBSERVACOES GERAIS\n" +
		"DEF456 FORA DA SECAO 60 h\n"

	records := ParsePendingSection(text)
	require.Len(t, records, 1)
	assert.Equal(t, "ABC0123", records[0].Code)
}

func TestParsePendingSection_Absent(t *testing.T) {
	assert.Nil(t, ParsePendingSection("historico sem secao de pendencias"))
}
