package pipeline

import (
	"context"
	"fmt"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
)

// MultiLoader writes each batch to every wrapped loader in order and stops at
// the first failure. Offsets are only committed once all sinks succeed, so a
// retried batch may be written twice to the earlier sinks; sinks must treat
// results keyed by ID as upserts.
type MultiLoader struct {
	loaders []BatchLoader
}

// NewMultiLoader fans batches out to the given loaders. Nil loaders are skipped.
func NewMultiLoader(loaders ...BatchLoader) *MultiLoader {
	m := &MultiLoader{}
	for _, l := range loaders {
		if l != nil {
			m.loaders = append(m.loaders, l)
		}
	}
	return m
}

func (m *MultiLoader) LoadBatch(ctx context.Context, results []domain.Subcatchment) error {
	for i, l := range m.loaders {
		if err := l.LoadBatch(ctx, results); err != nil {
			return fmt.Errorf("loader %d (%T): %w", i, l, err)
		}
	}
	return nil
}
