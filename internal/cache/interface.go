package cache

import (
	"context"
	"time"
)

// Cache is a key-value store with JSON-serialized values and per-key TTLs.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const CartKeyPrefix = "cart"
