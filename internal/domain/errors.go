package domain

import (
	"errors"

	"github.com/couchcryptid/catchment-param-service/internal/fuzzy"
)

// Re-exported so callers of this package need a single set of sentinels.
var (
	ErrInvalidInput     = fuzzy.ErrInvalidInput
	ErrNoApplicableRule = fuzzy.ErrNoApplicableRule

	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("subcatchment not found")
)
