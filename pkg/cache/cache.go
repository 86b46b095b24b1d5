// Package cache stores check reports by content so unchanged documents are
// not walked again.
//
// Entries are opaque bytes under string keys. [ReportKey] derives the key
// from everything that decides a result: the document hash, its format, the
// decode options and the policy with its limits.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
