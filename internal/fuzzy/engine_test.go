package fuzzy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleTriangleEngine(t *testing.T, shape Shape) *Engine {
	t.Helper()
	in := mustVariable(t, "in", Antecedent, mustDomain(t, "in", 0, 1, 1),
		Term{Label: "on", Shape: Triangular(0, 1, 1)},
	)
	out := mustVariable(t, "out", Consequent, mustDomain(t, "out", 0, 10, 0.01),
		Term{Label: "peak", Shape: shape},
	)
	reg, err := NewRegistry(in, out)
	require.NoError(t, err)
	bank, err := NewRuleBank(reg, mustRule(t, NewRuleBuilder(reg, "only").When("in", "on").Then("out", "peak")))
	require.NoError(t, err)
	return NewEngine(bank)
}

func TestInferSingleSymmetricTriangle(t *testing.T) {
	e := singleTriangleEngine(t, Triangular(0, 1, 2))

	got, err := e.Infer("out", map[string]float64{"in": 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-6)
}

func TestInferSingleLeftShoulderTriangle(t *testing.T) {
	e := singleTriangleEngine(t, Triangular(0, 1, 2.5))

	got, err := e.Infer("out", map[string]float64{"in": 1})
	require.NoError(t, err)
	// Centroid of a triangle is the mean of its vertices.
	assert.InDelta(t, 3.5/3, got, 0.01)
}

func TestInferTwoRulesLeansToStrongerRule(t *testing.T) {
	e := NewEngine(twoRuleBank(t))

	ev, err := e.Evaluate("y", map[string]float64{"x": 7})
	require.NoError(t, err)

	require.Len(t, ev.Fired, 2)
	assert.Equal(t, "r_lo", ev.Fired[0].RuleID)
	assert.InDelta(t, 0.3, ev.Fired[0].Strength, 1e-12)
	assert.InDelta(t, 0.7, ev.Fired[1].Strength, 1e-12)

	assert.Greater(t, ev.Value, 20.0)
	assert.Less(t, ev.Value, 80.0)
	assert.Greater(t, ev.Value, 50.0, "stronger rule should pull the centroid toward its peak")
	// Clipped areas are 10h(2-h): 5.1 and 9.1, centroids at 20 and 80.
	assert.InDelta(t, (5.1*20+9.1*80)/14.2, ev.Value, 0.5)
}

func TestInferNoApplicableRule(t *testing.T) {
	reg := twoRuleRegistry(t)
	bank, err := NewRuleBank(reg,
		mustRule(t, NewRuleBuilder(reg, "r_hi").When("x", "b").Then("y", "hi")),
	)
	require.NoError(t, err)

	_, err = NewEngine(bank).Infer("y", map[string]float64{"x": 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoApplicableRule)

	var nar *NoApplicableRuleError
	require.True(t, errors.As(err, &nar))
	assert.Equal(t, "y", nar.Output)
	assert.Equal(t, map[string]float64{"x": 0}, nar.Inputs)
	assert.Contains(t, err.Error(), "x=0")
}

func TestInferNoRulesForOutput(t *testing.T) {
	reg := twoRuleRegistry(t)
	bank, err := NewRuleBank(reg)
	require.NoError(t, err)

	_, err = NewEngine(bank).Infer("y", map[string]float64{"x": 5})
	assert.ErrorIs(t, err, ErrNoApplicableRule)
}

func TestInferInvalidInput(t *testing.T) {
	e := NewEngine(twoRuleBank(t))

	tests := []struct {
		name   string
		inputs map[string]float64
		want   error
	}{
		{"above domain", map[string]float64{"x": 11}, ErrInvalidInput},
		{"below domain", map[string]float64{"x": -1}, ErrInvalidInput},
		{"missing", map[string]float64{}, ErrInvalidInput},
		{"unknown name", map[string]float64{"x": 1, "z": 1}, ErrUnknownVariable},
		{"output as input", map[string]float64{"x": 1, "y": 1}, ErrUnknownVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Infer("y", tt.inputs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInferUnknownOutput(t *testing.T) {
	e := NewEngine(twoRuleBank(t))

	_, err := e.Infer("nope", map[string]float64{"x": 1})
	assert.ErrorIs(t, err, ErrUnknownVariable)

	_, err = e.Infer("x", map[string]float64{"x": 1})
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestInferDeterministic(t *testing.T) {
	e := NewEngine(twoRuleBank(t))
	inputs := map[string]float64{"x": 3.3}

	first, err := e.Infer("y", inputs)
	require.NoError(t, err)

	for range 20 {
		got, err := e.Infer("y", inputs)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestInferConcurrentCallsAgree(t *testing.T) {
	e := NewEngine(twoRuleBank(t))
	want, err := e.Infer("y", map[string]float64{"x": 6})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = e.Infer("y", map[string]float64{"x": 6})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestInferCentroidWithinDomain(t *testing.T) {
	e := NewEngine(twoRuleBank(t))
	for x := 0.0; x <= 10; x++ {
		got, err := e.Infer("y", map[string]float64{"x": x})
		require.NoError(t, err, "x=%g", x)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestFireOrExpression(t *testing.T) {
	reg := twoRuleRegistry(t)

	got, err := Fire(reg, Or(Pred("x", "a"), Pred("x", "b")), map[string]float64{"x": 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, got, 1e-12)

	got, err = Fire(reg, And(Pred("x", "a"), Pred("x", "b")), map[string]float64{"x": 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.2, got, 1e-12)

	_, err = Fire(reg, Pred("x", "c"), map[string]float64{"x": 2})
	assert.ErrorIs(t, err, ErrUnknownTerm)
}
