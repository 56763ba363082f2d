package fuzzy

import (
	"fmt"
	"math"
)

// Decode returns the label whose term has the highest membership at value.
// Ties go to the term declared first.
func Decode(v *Variable, value float64) (string, error) {
	if len(v.terms) == 0 {
		return "", fmt.Errorf("%w: %q", ErrEmptyVariable, v.name)
	}
	if math.IsNaN(value) {
		return "", fmt.Errorf("%w: NaN for %q", ErrInvalidInput, v.name)
	}

	best, bestMu := 0, -1.0
	for i, t := range v.terms {
		if mu := Membership(t, value); mu > bestMu {
			best, bestMu = i, mu
		}
	}
	return v.terms[best].Label, nil
}
