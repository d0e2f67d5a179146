package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache computes values on a miss and stores them. The key of an
// input is derived by keyFn, so callers only deal in inputs.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache  CacheManager[K, V]
	keyFn  func(I) K
	fn     func(ctx context.Context, input I) (V, error)
	ttl    time.Duration
	bypass bool
}

// NewReadThroughCache wraps cache. With bypass set every Get calls fn.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	keyFn func(I) K,
	fn func(ctx context.Context, input I) (V, error),
	ttl time.Duration,
	bypass bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:  cache,
		keyFn:  keyFn,
		fn:     fn,
		ttl:    ttl,
		bypass: bypass,
	}
}

// Get returns the cached value for input, computing it on a miss.
// Errors from fn are returned and nothing is stored.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, input I) (V, error) {
	if r.bypass {
		return r.fn(ctx, input)
	}

	key := r.keyFn(input)
	if v, ok := r.cache.GetWithRefresh(ctx, key, r.ttl); ok {
		return v, nil
	}

	v, err := r.fn(ctx, input)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, r.ttl)
	return v, nil
}

// Stats reports the underlying cache counters.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return r.cache.Stats()
}

// Flush drops every cached value.
func (r *ReadThroughCache[K, V, I]) Flush(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
