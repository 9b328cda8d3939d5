package cache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestCache(t *testing.T) *ResponseCache {
	t.Helper()
	return &ResponseCache{
		memory:   make(map[string]Entry),
		ttl:      time.Minute,
		maxSize:  1 << 20,
		cacheDir: t.TempDir(),
		enabled:  true,
	}
}

// Tests for GetConfig

func TestGetConfig(t *testing.T) {
	viper.Reset()
	viper.Set("cache.enabled", true)
	viper.Set("cache.ttl", 600)
	viper.Set("cache.max_size", 50)
	defer viper.Reset()

	cfg := GetConfig()
	if !cfg.Enabled {
		t.Error("Enabled should be true")
	}
	if cfg.TTL != 600 {
		t.Errorf("TTL = %d, want 600", cfg.TTL)
	}
	if cfg.MaxSize != 50 {
		t.Errorf("MaxSize = %d, want 50", cfg.MaxSize)
	}
}

// Tests for Get/Set

func TestSetAndGet(t *testing.T) {
	c := newTestCache(t)

	c.Set("/api/models/list", []byte(`[{"provider":"OpenAI"}]`))

	data, ok := c.Get("/api/models/list")
	if !ok {
		t.Fatal("Get() should find the stored entry")
	}
	if !bytes.Equal(data, []byte(`[{"provider":"OpenAI"}]`)) {
		t.Errorf("Get() = %s", data)
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache(t)

	if _, ok := c.Get("/api/models/stats"); ok {
		t.Error("Get() should miss for unknown key")
	}
}

func TestGetExpiredEntry(t *testing.T) {
	c := newTestCache(t)
	c.ttl = -time.Second // Entries expire immediately

	c.Set("/api/models/list", []byte(`[]`))

	if _, ok := c.Get("/api/models/list"); ok {
		t.Error("Get() should miss for expired entry")
	}
}

func TestDisabledCache(t *testing.T) {
	c := newTestCache(t)
	c.enabled = false

	c.Set("/api/models/list", []byte(`[]`))
	if _, ok := c.Get("/api/models/list"); ok {
		t.Error("disabled cache should never hit")
	}
}

// Tests for file spillover

func TestLargeEntriesPersistToDisk(t *testing.T) {
	c := newTestCache(t)

	big := bytes.Repeat([]byte("x"), 2048)
	c.Set("/api/models/list", big)

	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("cache dir has %d files, want 1", len(entries))
	}
	if filepath.Ext(entries[0].Name()) != ".cache" {
		t.Errorf("cache file named %q", entries[0].Name())
	}

	// A fresh cache over the same dir finds the entry on disk
	fresh := &ResponseCache{
		memory:   make(map[string]Entry),
		ttl:      time.Minute,
		maxSize:  1 << 20,
		cacheDir: c.cacheDir,
		enabled:  true,
	}
	data, ok := fresh.Get("/api/models/list")
	if !ok {
		t.Fatal("entry should survive into a fresh cache via the file store")
	}
	if !bytes.Equal(data, big) {
		t.Error("file-backed entry data mismatch")
	}
}

func TestSmallEntriesStayInMemory(t *testing.T) {
	c := newTestCache(t)

	c.Set("/api/models/stats", []byte(`{}`))

	entries, err := os.ReadDir(c.cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("small entry should not spill to disk, found %d files", len(entries))
	}
}

// Tests for Delete/Clear/Cleanup

func TestDelete(t *testing.T) {
	c := newTestCache(t)

	c.Set("/api/models/list", []byte(`[]`))
	c.Delete("/api/models/list")

	if _, ok := c.Get("/api/models/list"); ok {
		t.Error("Get() should miss after Delete()")
	}
}

func TestClear(t *testing.T) {
	c := newTestCache(t)

	c.Set("a", []byte(`1`))
	c.Set("b", []byte(`2`))
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Clear() should drop all entries")
	}
	if c.totalSize != 0 {
		t.Errorf("totalSize = %d after Clear(), want 0", c.totalSize)
	}
}

func TestCleanupRemovesExpired(t *testing.T) {
	c := newTestCache(t)

	c.Set("fresh", []byte(`1`))
	c.memory["stale"] = Entry{Data: []byte(`2`), ExpiresAt: time.Now().Add(-time.Minute)}
	c.totalSize += 1

	c.Cleanup()

	if _, ok := c.memory["stale"]; ok {
		t.Error("Cleanup() should remove expired entries")
	}
	if _, ok := c.memory["fresh"]; !ok {
		t.Error("Cleanup() should keep live entries")
	}
}

// Tests for eviction

func TestEvictionMakesRoom(t *testing.T) {
	c := newTestCache(t)
	c.maxSize = 100

	c.Set("old", bytes.Repeat([]byte("a"), 60))
	// Age the first entry so eviction order is unambiguous
	c.memory["old"] = Entry{Data: c.memory["old"].Data, ExpiresAt: time.Now().Add(time.Second)}

	c.Set("new", bytes.Repeat([]byte("b"), 60))

	if _, ok := c.memory["old"]; ok {
		t.Error("oldest entry should be evicted when over budget")
	}
	if _, ok := c.memory["new"]; !ok {
		t.Error("newest entry should be kept")
	}
}

// Tests for simpleHash

func TestSimpleHashStable(t *testing.T) {
	a := simpleHash("/api/models/list")
	b := simpleHash("/api/models/list")
	if a != b {
		t.Errorf("simpleHash not stable: %q vs %q", a, b)
	}
	if len(a) != 8 {
		t.Errorf("simpleHash length = %d, want 8 hex chars", len(a))
	}
	if a == simpleHash("/api/models/stats") {
		t.Error("different keys should not collide in this fixture")
	}
}
