// Package cache provides the optional read-through store used for metadata
// lookups. Resolved streams are never cached.
package cache

import "github.com/rs/zerolog"

// EvictCallback is called when an entry is evicted from the cache.
// Only the memory provider reports evictions; redis expires keys server-side.
type EvictCallback func(key string, value []byte)

// Cache defines the interface for key-value caching with LRU semantics.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found, or nil and false if not.
	Get(key string) ([]byte, bool)

	// Set stores a value with the given key. If the key already exists, it is overwritten.
	Set(key string, value []byte)

	// Contains reports whether a key exists without refreshing its recency.
	Contains(key string) bool

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache. No-op for the memory provider.
	Close() error
}

// Logger receives backend failures. Cache operations never return errors so
// a broken backend degrades to misses.
type Logger interface {
	Error(msg string, err error)
}

// NewZerologLogger adapts a zerolog logger to Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{l: l}
}

type zerologLogger struct {
	l zerolog.Logger
}

func (z zerologLogger) Error(msg string, err error) {
	z.l.Error().Err(err).Msg(msg)
}
