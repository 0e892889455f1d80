// Package cache stores rendered chart artifacts so unchanged charts are not
// rasterized twice.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: a shared Redis server, enabled with --redis-url
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//
// Entries are addressed by [ArtifactKey], which hashes the DOT source. Any
// change to the input, ordering, or style changes the DOT and therefore the
// key, so entries never need explicit invalidation.
package cache

import (
	"context"
	"fmt"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get returns the value for key. A miss is reported by ok=false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey returns the key of the artifact rendered from DOT source with
// the given hash in the given format.
func ArtifactKey(dotHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", dotHash, format)
}
