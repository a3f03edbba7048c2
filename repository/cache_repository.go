package repository

import "context"

// CacheRepository memoizes serialized computation results.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
