package equivalency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_SingleCode(t *testing.T) {
	completed := NewCodeSet([]string{"ABC101"})

	ok, codes := Evaluate("ABC101", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"ABC101"}, codes)

	ok, codes = Evaluate("XYZ999", completed)
	assert.False(t, ok)
	assert.Nil(t, codes)
}

func TestEvaluate_OrUnionsTrueSides(t *testing.T) {
	completed := NewCodeSet([]string{"AAA100", "BBB200"})

	ok, codes := Evaluate("AAA100 OR BBB200", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"AAA100", "BBB200"}, codes)

	ok, codes = Evaluate("AAA100 OR CCC300", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"AAA100"}, codes)
}

func TestEvaluate_AndRequiresBothSides(t *testing.T) {
	completed := NewCodeSet([]string{"AAA100"})

	ok, _ := Evaluate("AAA100 AND BBB200", completed)
	assert.False(t, ok)

	ok, codes := Evaluate("AAA100 AND BBB200", NewCodeSet([]string{"AAA100", "BBB200"}))
	assert.True(t, ok)
	assert.Equal(t, []string{"AAA100", "BBB200"}, codes)
}

func TestEvaluate_OrBindsLooserThanAnd(t *testing.T) {
	// A AND B OR C reads (A AND B) OR C.
	completed := NewCodeSet([]string{"CCC300"})

	ok, codes := Evaluate("AAA100 AND BBB200 OR CCC300", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"CCC300"}, codes)

	ok, _ = Evaluate("AAA100 AND BBB200 OR CCC300", NewCodeSet([]string{"AAA100"}))
	assert.False(t, ok)
}

func TestEvaluate_ParenthesesOverridePrecedence(t *testing.T) {
	// A AND (B OR C) is not satisfiable by C alone.
	completed := NewCodeSet([]string{"CCC300"})
	ok, _ := Evaluate("AAA100 AND (BBB200 OR CCC300)", completed)
	assert.False(t, ok)

	ok, codes := Evaluate("AAA100 AND (BBB200 OR CCC300)", NewCodeSet([]string{"AAA100", "CCC300"}))
	assert.True(t, ok)
	assert.Equal(t, []string{"AAA100", "CCC300"}, codes)
}

func TestEvaluate_NestedGroups(t *testing.T) {
	completed := NewCodeSet([]string{"AAA100", "DDD400"})

	ok, codes := Evaluate("((AAA100 OR BBB200) AND (CCC300 OR DDD400))", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"AAA100", "DDD400"}, codes)
}

func TestEvaluate_CaseAndWhitespaceInsensitive(t *testing.T) {
	completed := NewCodeSet([]string{"abc 101"})

	ok, codes := Evaluate("  ABC101  or  ZZZ999 ", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"ABC101"}, codes)
}

func TestEvaluate_OperatorInsideCodeIsNotAnOperator(t *testing.T) {
	// ANDORRA101 contains both operator words; only whole tokens split.
	completed := NewCodeSet([]string{"ANDORRA101"})
	ok, codes := Evaluate("ANDORRA101", completed)
	assert.True(t, ok)
	assert.Equal(t, []string{"ANDORRA101"}, codes)
}

func TestEvaluate_Degenerate(t *testing.T) {
	ok, _ := Evaluate("", NewCodeSet([]string{"AAA100"}))
	assert.False(t, ok)

	ok, _ = Evaluate("   ", NewCodeSet(nil))
	assert.False(t, ok)
}
