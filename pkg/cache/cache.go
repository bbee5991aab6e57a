// Package cache provides byte-oriented caches for decoded report assets.
//
// Loading logos from disk or over HTTP and normalising them is the only
// expensive, repeatable step of report generation, so the asset loader can
// keep the normalised bytes in a [Cache] across invocations.
//
// Implementations:
//   - [NullCache]: never stores anything (caching disabled)
//   - [MemoryCache]: in-process map, for a long-running server
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared across server instances
package cache

import (
	"context"
	"time"
)

// TTLAsset is the default lifetime of a cached, normalised asset.
const TTLAsset = 24 * time.Hour

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys. A non-empty prefix namespaces every key, which
// lets several deployments share one Redis database.
type Keyer struct {
	prefix string
}

// NewKeyer creates a keyer with the given prefix.
func NewKeyer(prefix string) Keyer {
	return Keyer{prefix: prefix}
}

// AssetKeyOpts holds the normalisation parameters that affect asset bytes.
type AssetKeyOpts struct {
	MaxEdge int `json:"max_edge"`
}

// AssetKey generates a key for a normalised asset loaded from source.
func (k Keyer) AssetKey(source string, opts AssetKeyOpts) string {
	return k.prefix + hashKey("asset", source, opts)
}
