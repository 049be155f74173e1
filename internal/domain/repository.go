package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for memoizing derived results
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear()
}

// KeyValueStore is the persistence boundary for profiles and favorites.
// Get returns ErrCacheMiss when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CatalogSource supplies raw product records
type CatalogSource interface {
	Fetch(ctx context.Context) ([]RawProductRecord, error)
}
