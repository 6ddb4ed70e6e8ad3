// Package cache provides the response cache used by read endpoints: a
// small Cache interface, Redis and in-memory implementations, and an HTTP
// middleware that caches successful GET responses per URL until the
// owning entity is mutated.
package cache

import (
	"context"
	"time"
)

// Cache is the minimal contract both backends satisfy. Keys are grouped by
// entity prefix so mutations can invalidate a whole entity at once.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// keyPrefix namespaces all cache keys owned by this application.
const keyPrefix = "angodata:"
