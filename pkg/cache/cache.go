package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys. Implementations must be
// safe for concurrent use. A miss is reported as (nil, false, nil); errors are
// reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes. Layouts and netlists are pure functions of the
// circuit, so they live long; rendered artifacts also depend on the renderer
// and are kept shorter.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLNetlist  = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Clear drops every entry in c if the backend supports it.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return ErrUnsupported
}
