package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDomain(t *testing.T, name string, lo, hi, step float64) Domain {
	t.Helper()
	d, err := NewDomain(name, lo, hi, step)
	require.NoError(t, err)
	return d
}

func mustVariable(t *testing.T, name string, role Role, d Domain, terms ...Term) *Variable {
	t.Helper()
	v, err := NewVariable(name, role, d, terms...)
	require.NoError(t, err)
	return v
}

// twoRuleRegistry has one input x on [0, 10] with complementary ramps and one
// output y on [0, 100] with two well separated triangles.
func twoRuleRegistry(t *testing.T) *Registry {
	t.Helper()
	x := mustVariable(t, "x", Antecedent, mustDomain(t, "x", 0, 10, 1),
		Term{Label: "a", Shape: RampDown(0, 10)},
		Term{Label: "b", Shape: RampUp(0, 10)},
	)
	y := mustVariable(t, "y", Consequent, mustDomain(t, "y", 0, 100, 0.5),
		Term{Label: "lo", Shape: Triangular(10, 20, 30)},
		Term{Label: "hi", Shape: Triangular(70, 80, 90)},
	)
	reg, err := NewRegistry(x, y)
	require.NoError(t, err)
	return reg
}

func mustRule(t *testing.T, b *RuleBuilder) *Rule {
	t.Helper()
	r, err := b.Build()
	require.NoError(t, err)
	return r
}

func twoRuleBank(t *testing.T) *RuleBank {
	t.Helper()
	reg := twoRuleRegistry(t)
	bank, err := NewRuleBank(reg,
		mustRule(t, NewRuleBuilder(reg, "r_lo").When("x", "a").Then("y", "lo")),
		mustRule(t, NewRuleBuilder(reg, "r_hi").When("x", "b").Then("y", "hi")),
	)
	require.NoError(t, err)
	return bank
}
