// Package cache stores pipeline results keyed by content hash.
//
// The pipeline caches three things: computed layouts, exported netlists, and
// rendered artifacts. A [Keyer] turns a content hash plus the options that
// affect a stage into a key, and a [Cache] stores the bytes.
//
// Backends:
//   - [FileCache]: JSON files under $XDG_CACHE_HOME/mieza, the CLI default
//   - [RedisCache]: shared cache for API deployments, TTL via key expiry
//   - [MongoCache]: shared cache with a server-side TTL index
//   - [NullCache]: disables caching
//
// [Open] picks a backend from [Options], which is how the config file and
// command-line flags select one.
package cache
