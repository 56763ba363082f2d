// Package cache memoises estimates per land form and land cover pair.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
	"github.com/couchcryptid/catchment-param-service/internal/observability"
)

type pairKey struct {
	form  domain.LandForm
	cover domain.LandCover
}

// CachedEstimator wraps an Estimator with an in-memory LRU cache. Only
// successful estimates are cached.
type CachedEstimator struct {
	inner   domain.Estimator
	cache   *lru.Cache[pairKey, domain.Estimate]
	metrics *observability.Metrics
}

// NewCachedEstimator creates a cache decorator around an estimator. metrics may be nil.
func NewCachedEstimator(inner domain.Estimator, maxEntries int, metrics *observability.Metrics) (*CachedEstimator, error) {
	c, err := lru.New[pairKey, domain.Estimate](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("estimate cache: %w", err)
	}
	return &CachedEstimator{inner: inner, cache: c, metrics: metrics}, nil
}

func (c *CachedEstimator) ComputeAll(form domain.LandForm, cover domain.LandCover) (domain.Estimate, error) {
	key := pairKey{form: form, cover: cover}
	if e, ok := c.cache.Get(key); ok {
		c.record("hit")
		return e, nil
	}
	c.record("miss")

	e, err := c.inner.ComputeAll(form, cover)
	if err != nil {
		return e, err
	}
	c.cache.Add(key, e)
	return e, nil
}

func (c *CachedEstimator) DecodeLabel(output string, value float64) (string, error) {
	return c.inner.DecodeLabel(output, value)
}

// Len reports the number of cached pairs.
func (c *CachedEstimator) Len() int { return c.cache.Len() }

func (c *CachedEstimator) record(result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.EstimateCache.WithLabelValues(result).Inc()
}
