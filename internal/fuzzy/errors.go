package fuzzy

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidDomain      = errors.New("invalid domain")
	ErrInvalidShape       = errors.New("invalid membership shape")
	ErrDuplicateTerm      = errors.New("duplicate term")
	ErrDuplicateVariable  = errors.New("duplicate variable")
	ErrDuplicateRule      = errors.New("duplicate rule")
	ErrUnknownVariable    = errors.New("unknown variable")
	ErrUnknownTerm        = errors.New("unknown term")
	ErrIncompleteRule     = errors.New("incomplete rule")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoApplicableRule   = errors.New("no applicable rule")
	ErrEmptyVariable      = errors.New("variable has no terms")
	ErrConflictingOutcome = errors.New("conflicting consequent")
)

// NoApplicableRuleError is returned by inference when no rule for the output
// fired with non-zero strength. It matches ErrNoApplicableRule via errors.Is.
type NoApplicableRuleError struct {
	Output string
	Inputs map[string]float64
}

func (e *NoApplicableRuleError) Error() string {
	return fmt.Sprintf("%s for %q (inputs: %s)", ErrNoApplicableRule, e.Output, formatInputs(e.Inputs))
}

func (e *NoApplicableRuleError) Is(target error) bool {
	return target == ErrNoApplicableRule
}

func formatInputs(inputs map[string]float64) string {
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + "=" + strconv.FormatFloat(inputs[name], 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
