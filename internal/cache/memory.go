package cache

import (
	"errors"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryCache)
}

var errMemorySize = errors.New("cache: memory provider requires a positive size")

// memoryCache is a size-bounded in-process LRU with per-entry TTL. Values are
// copied on the way in and out so a caller decoding in place cannot corrupt a
// stored metadata record.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	// The expirable LRU treats size 0 as unbounded
	if cfg.Size <= 0 {
		return nil, errMemorySize
	}

	var onEvict lru.EvictCallback[string, []byte]
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) {
			cfg.OnEvict(key, value)
		}
	}
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	val, ok := m.inner.Get(key)
	if !ok {
		return nil, false
	}
	return slices.Clone(val), true
}

func (m *memoryCache) Set(key string, value []byte) {
	m.inner.Add(key, slices.Clone(value))
}

func (m *memoryCache) Contains(key string) bool {
	return m.inner.Contains(key)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
