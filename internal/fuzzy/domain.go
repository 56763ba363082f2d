package fuzzy

import (
	"fmt"
	"math"
)

// Domain is the closed numeric range a variable lives on, together with the
// sampling step used when defuzzifying over it.
type Domain struct {
	name string
	min  float64
	max  float64
	step float64
	grid []float64
}

// NewDomain validates the bounds and precomputes the sampling grid
// min, min+step, ..., max. When the span is not a multiple of step the grid
// still ends exactly at max.
func NewDomain(name string, lo, hi, step float64) (Domain, error) {
	if !isFinite(lo) || !isFinite(hi) || !isFinite(step) {
		return Domain{}, fmt.Errorf("%w: %q has non-finite bounds", ErrInvalidDomain, name)
	}
	if lo >= hi {
		return Domain{}, fmt.Errorf("%w: %q min %g must be below max %g", ErrInvalidDomain, name, lo, hi)
	}
	if step <= 0 || step > hi-lo {
		return Domain{}, fmt.Errorf("%w: %q step %g out of range (0, %g]", ErrInvalidDomain, name, step, hi-lo)
	}

	n := int(math.Floor((hi-lo)/step + 1e-9))
	grid := make([]float64, 0, n+2)
	for i := 0; i <= n; i++ {
		grid = append(grid, lo+float64(i)*step)
	}
	if last := grid[len(grid)-1]; hi-last > step*1e-9 {
		grid = append(grid, hi)
	} else {
		grid[len(grid)-1] = hi
	}

	return Domain{name: name, min: lo, max: hi, step: step, grid: grid}, nil
}

func (d Domain) Name() string  { return d.name }
func (d Domain) Min() float64  { return d.min }
func (d Domain) Max() float64  { return d.max }
func (d Domain) Step() float64 { return d.step }

// GridLen reports the number of sample points used for defuzzification.
func (d Domain) GridLen() int { return len(d.grid) }

// Grid returns a copy of the sample points.
func (d Domain) Grid() []float64 {
	out := make([]float64, len(d.grid))
	copy(out, d.grid)
	return out
}

// Contains reports whether x is a finite value inside [min, max].
func (d Domain) Contains(x float64) bool {
	return isFinite(x) && x >= d.min && x <= d.max
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
