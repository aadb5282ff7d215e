package cache

// instrumentedCache records hits, misses, stores and the lazily scraped entry
// count under the given group label. Empty values are never stored: every
// cached record is a successful lookup with a body.
type instrumentedCache struct {
	inner Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{inner: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if !ok || len(val) == 0 {
		MissesTotal.WithLabelValues(c.group).Inc()
		return nil, false
	}
	HitsTotal.WithLabelValues(c.group).Inc()
	return val, true
}

func (c *instrumentedCache) Set(key string, value []byte) {
	if len(value) == 0 {
		return
	}
	c.inner.Set(key, value)
	StoresTotal.WithLabelValues(c.group).Inc()
}

func (c *instrumentedCache) Contains(key string) bool {
	return c.inner.Contains(key)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

// Close unregisters the entries collector and closes the underlying cache.
func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.inner.Close()
}
