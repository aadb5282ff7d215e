package cache

import (
	"slices"
	"testing"
	"time"

	"github.com/Belphemur/StreamResolver/internal/config"
)

func TestNew_MemoryProvider(t *testing.T) {
	c, err := New("memory", ProviderConfig{Size: 10, TTL: time.Hour})
	if err != nil {
		t.Fatalf("New memory: %v", err)
	}
	defer c.Close()

	c.Set("metadata:movie:1", []byte(`{"title":"Alpha"}`))
	val, ok := c.Get("metadata:movie:1")
	if !ok || string(val) != `{"title":"Alpha"}` {
		t.Fatalf("Get = %q, %v", val, ok)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New("memcached", ProviderConfig{}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestRegisteredProviders(t *testing.T) {
	names := RegisteredProviders()
	if !slices.Contains(names, "memory") || !slices.Contains(names, "redis") {
		t.Fatalf("expected memory and redis providers, got %v", names)
	}
	if !slices.IsSorted(names) {
		t.Errorf("providers not sorted: %v", names)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestNew_RedisUnreachable(t *testing.T) {
	_, err := New("redis", ProviderConfig{TTL: time.Hour, RedisAddress: "localhost:59999"})
	if err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}

func TestFromConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := &config.Config{}
		c, err := FromConfig(cfg, "metadata-disabled")
		if err != nil {
			t.Fatalf("FromConfig: %v", err)
		}
		if c != nil {
			t.Fatal("expected nil cache when provider is empty")
		}
	})

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Cache.Provider = "memory"
		cfg.Cache.TTL = "1m"
		c, err := FromConfig(cfg, "metadata-fromconfig")
		if err != nil {
			t.Fatalf("FromConfig: %v", err)
		}
		t.Cleanup(func() { _ = c.Close() })
		c.Set("k", []byte("v"))
		if !c.Contains("k") {
			t.Fatal("expected key to be stored")
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Cache.Provider = "memory"
		cfg.Cache.TTL = "forever"
		if _, err := FromConfig(cfg, "metadata-badttl"); err == nil {
			t.Fatal("expected error for invalid ttl")
		}
	})
}
