// Package cache holds read-side caching for listing endpoints. Each
// scope (inventory, bookings, ...) carries a generation counter that
// is bumped on writes, so keys from older generations simply expire.
package cache

import (
	"context"
	"time"
)

type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Generation(ctx context.Context, scope string) (int64, error)
	Bump(ctx context.Context, scope string) error
}

// NoopListingCache is used when redis is not configured; every read
// is a miss and writes are dropped.
type NoopListingCache struct{}

func (NoopListingCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopListingCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (NoopListingCache) Generation(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (NoopListingCache) Bump(_ context.Context, _ string) error {
	return nil
}
