package cache

import (
	"context"
	"fmt"
)

// Backend names a cache implementation.
type Backend string

const (
	BackendNone  Backend = "none"
	BackendFile  Backend = "file"
	BackendRedis Backend = "redis"
	BackendMongo Backend = "mongo"
)

// Options selects and configures a backend. Only the fields for the chosen
// backend are read.
type Options struct {
	Backend    Backend
	Dir        string // file
	URL        string // redis, mongo
	Prefix     string // redis
	Database   string // mongo
	Collection string // mongo
}

// Open creates the cache described by opts. An empty backend means file, and
// an empty file directory means DefaultDir.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := opts.Dir
		if dir == "" {
			d, err := DefaultDir()
			if err != nil {
				return nil, fmt.Errorf("locate cache dir: %w", err)
			}
			dir = d
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.URL, opts.Prefix)
	case BackendMongo:
		return NewMongoCache(ctx, opts.URL, opts.Database, opts.Collection)
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
