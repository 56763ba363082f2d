package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCleanBank(t *testing.T) {
	assert.Empty(t, Lint(twoRuleBank(t)))
}

func TestLintFindings(t *testing.T) {
	reg := twoRuleRegistry(t)
	bank, err := NewRuleBank(reg,
		mustRule(t, NewRuleBuilder(reg, "base").When("x", "a").Then("y", "lo")),
		mustRule(t, NewRuleBuilder(reg, "same").When("x", "a").Then("y", "lo")),
		mustRule(t, NewRuleBuilder(reg, "clash").When("x", "a").Then("y", "hi")),
		mustRule(t, NewRuleBuilder(reg, "narrow").When("x", "b").When("x", "a").Then("y", "hi")),
	)
	require.NoError(t, err)

	warnings := Lint(bank)

	kinds := map[[2]string]LintKind{}
	for _, w := range warnings {
		assert.Equal(t, "y", w.Output)
		kinds[w.Rules] = w.Kind
	}
	assert.Equal(t, LintDuplicate, kinds[[2]string{"base", "same"}])
	assert.Equal(t, LintConflict, kinds[[2]string{"base", "clash"}])
	assert.Equal(t, LintOverlap, kinds[[2]string{"base", "narrow"}])
	_, flagged := kinds[[2]string{"clash", "narrow"}]
	assert.False(t, flagged, "rules agreeing on the label are not an overlap")
}

func TestLintExpandsOr(t *testing.T) {
	reg := twoRuleRegistry(t)
	bank, err := NewRuleBank(reg,
		mustRule(t, NewRuleBuilder(reg, "any").WhenExpr(Or(Pred("x", "a"), Pred("x", "b"))).Then("y", "lo")),
		mustRule(t, NewRuleBuilder(reg, "b_only").When("x", "b").Then("y", "hi")),
	)
	require.NoError(t, err)

	warnings := Lint(bank)
	require.Len(t, warnings, 1)
	assert.Equal(t, LintConflict, warnings[0].Kind)
	assert.Contains(t, warnings[0].String(), "any / b_only")
}
