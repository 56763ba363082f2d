package fuzzy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangularMembership(t *testing.T) {
	tri := Triangular(0, 5, 10)

	tests := []struct {
		x    float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{2.5, 0.5},
		{5, 1},
		{7.5, 0.5},
		{10, 0},
		{11, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tri.Eval(tt.x), 1e-12, "x=%g", tt.x)
	}
}

func TestTriangularShoulders(t *testing.T) {
	t.Run("left shoulder", func(t *testing.T) {
		s := Triangular(0, 0, 1)
		require.NoError(t, s.Validate())
		assert.Equal(t, 1.0, s.Eval(-100))
		assert.Equal(t, 1.0, s.Eval(0))
		assert.InDelta(t, 0.5, s.Eval(0.5), 1e-12)
		assert.Equal(t, 0.0, s.Eval(1))
	})

	t.Run("right shoulder", func(t *testing.T) {
		s := Triangular(30, 60, 60)
		require.NoError(t, s.Validate())
		assert.Equal(t, 0.0, s.Eval(30))
		assert.InDelta(t, 0.5, s.Eval(45), 1e-12)
		assert.Equal(t, 1.0, s.Eval(60))
		assert.Equal(t, 1.0, s.Eval(1e9))
	})
}

func TestRamps(t *testing.T) {
	up := RampUp(2, 4)
	assert.Equal(t, 0.0, up.Eval(1))
	assert.InDelta(t, 0.5, up.Eval(3), 1e-12)
	assert.Equal(t, 1.0, up.Eval(4))
	assert.Equal(t, 1.0, up.Eval(400))

	down := RampDown(2, 4)
	assert.Equal(t, 1.0, down.Eval(-5))
	assert.InDelta(t, 0.25, down.Eval(3.5), 1e-12)
	assert.Equal(t, 0.0, down.Eval(4))
}

func TestMembershipBounds(t *testing.T) {
	shapes := []Shape{
		Triangular(0, 1, 2.5),
		Triangular(0, 0, 2),
		Triangular(75, 85, 100),
		Triangular(1, 1, 1.5),
		RampUp(0, 10),
		RampDown(-3, 3),
	}
	for _, s := range shapes {
		for x := -20.0; x <= 120; x += 0.25 {
			mu := s.Eval(x)
			assert.GreaterOrEqual(t, mu, 0.0, "%s at %g", s, x)
			assert.LessOrEqual(t, mu, 1.0, "%s at %g", s, x)
		}
		assert.Equal(t, 0.0, s.Eval(math.NaN()), s.String())
	}
}

func TestMembershipPeakAndTails(t *testing.T) {
	s := Triangular(20, 30, 40)
	assert.Equal(t, 1.0, s.Eval(30))

	prev := s.Eval(20)
	for x := 20.0; x <= 30; x += 0.5 {
		mu := s.Eval(x)
		assert.GreaterOrEqual(t, mu, prev, "rising flank must not decrease at %g", x)
		prev = mu
	}
	for x := 30.0; x <= 40; x += 0.5 {
		mu := s.Eval(x)
		assert.LessOrEqual(t, mu, prev, "falling flank must not increase at %g", x)
		prev = mu
	}
}

func TestShapeValidate(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
	}{
		{"unordered triangle", Triangular(2, 1, 3)},
		{"zero width triangle", Triangular(1, 1, 1)},
		{"reversed ramp", RampUp(5, 5)},
		{"infinite breakpoint", RampDown(0, math.Inf(1))},
		{"zero value", Shape{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.shape.Validate(), ErrInvalidShape)
		})
	}
}

func TestNewShape(t *testing.T) {
	s, err := NewShape(KindTriangular, []float64{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, s.Params())

	_, err = NewShape(KindRampUp, []float64{0, 1, 2})
	assert.ErrorIs(t, err, ErrInvalidShape)

	kind, err := ParseShapeKind("ramp_down")
	require.NoError(t, err)
	assert.Equal(t, KindRampDown, kind)

	_, err = ParseShapeKind("gaussian")
	assert.ErrorIs(t, err, ErrInvalidShape)
}
