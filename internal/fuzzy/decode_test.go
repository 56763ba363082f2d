package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	reg := twoRuleRegistry(t)
	y, _ := reg.Lookup("y")

	tests := []struct {
		value float64
		want  string
	}{
		{20, "lo"},
		{25, "lo"},
		{78, "hi"},
		// Neither term covers 50; the tie goes to the first declared term.
		{50, "lo"},
	}
	for _, tt := range tests {
		got, err := Decode(y, tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value=%g", tt.value)
	}
}

func TestDecodeTieGoesToFirstDeclared(t *testing.T) {
	v := mustVariable(t, "v", Consequent, mustDomain(t, "v", 0, 10, 1),
		Term{Label: "left", Shape: Triangular(0, 2, 6)},
		Term{Label: "right", Shape: Triangular(2, 6, 8)},
	)
	// Both memberships are 0.5 at x=4.
	got, err := Decode(v, 4)
	require.NoError(t, err)
	assert.Equal(t, "left", got)
}

func TestDecodeRoundTripsPeaks(t *testing.T) {
	reg := twoRuleRegistry(t)
	y, _ := reg.Lookup("y")
	for _, term := range y.Terms() {
		peak := term.Shape.Params()[1]
		got, err := Decode(y, peak)
		require.NoError(t, err)
		assert.Equal(t, term.Label, got)
	}
}

func TestDecodeErrors(t *testing.T) {
	empty := mustVariable(t, "e", Consequent, mustDomain(t, "e", 0, 1, 0.5))
	_, err := Decode(empty, 0.5)
	assert.ErrorIs(t, err, ErrEmptyVariable)

	reg := twoRuleRegistry(t)
	y, _ := reg.Lookup("y")
	_, err = Decode(y, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEngineDecode(t *testing.T) {
	e := NewEngine(twoRuleBank(t))
	got, err := e.Decode("y", 81)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = e.Decode("x", 1)
	assert.ErrorIs(t, err, ErrUnknownVariable)
}
