package ports

import (
	"context"
	"time"
)

// Cache is a generic key-value capability. The engine uses it to hold the
// latest matrix snapshot per project so rankings can be shown without a
// rebuild; adapters may be backed by SQLite or any other store.
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
