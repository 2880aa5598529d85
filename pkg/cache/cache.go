// Package cache stores the results of slow package-manager lookups.
//
// A [Cache] is a byte store with per-entry expiry. Three backends are
// provided:
//
//   - [FileCache]: JSON entries under a local directory, for CLI use
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are built with [Key], which hashes its parts so that arbitrary
// package names are safe to use as file names and Redis keys.
//
//	c, err := cache.NewFileCache(dir)
//	key := cache.Key("pip-show", "pip", "requests", "2.32.3")
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    // use data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
