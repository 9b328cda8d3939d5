// Package cache provides a TTL response cache for API GET requests,
// backed by memory with file spillover under the CLI cache directory.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/agentcomparer/comparer-cli/src/client/paths"
)

// Config holds cache configuration
type Config struct {
	Enabled bool // Enable response caching (default: true)
	TTL     int  // Cache TTL in seconds (default: 300 = 5 minutes)
	MaxSize int  // Max cache size in MB (default: 100)
}

// GetConfig returns cache configuration from viper
func GetConfig() Config {
	return Config{
		Enabled: viper.GetBool("cache.enabled"),
		TTL:     viper.GetInt("cache.ttl"),
		MaxSize: viper.GetInt("cache.max_size"),
	}
}

// Entry represents a cached item
type Entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResponseCache caches API responses in memory and on disk
type ResponseCache struct {
	mu        sync.RWMutex
	memory    map[string]Entry
	ttl       time.Duration
	maxSize   int64 // bytes
	cacheDir  string
	enabled   bool
	totalSize int64
}

var (
	defaultCache *ResponseCache
	cacheOnce    sync.Once
)

// Init initializes the default response cache from configuration
func Init() error {
	cfg := GetConfig()

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 300
	}

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = 100
	}

	enabled := cfg.Enabled
	if !viper.IsSet("cache.enabled") {
		enabled = true
	}

	cacheOnce.Do(func() {
		defaultCache = &ResponseCache{
			memory:   make(map[string]Entry),
			ttl:      time.Duration(ttl) * time.Second,
			maxSize:  int64(maxSize) * 1024 * 1024,
			cacheDir: paths.CacheDir(),
			enabled:  enabled,
		}
	})

	if err := os.MkdirAll(paths.CacheDir(), 0700); err != nil {
		return err
	}

	return nil
}

// Default returns the default cache instance
func Default() *ResponseCache {
	if defaultCache == nil {
		Init()
	}
	return defaultCache
}

// Get retrieves a cached value
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	// Check memory cache first
	if entry, ok := c.memory[key]; ok {
		if time.Now().Before(entry.ExpiresAt) {
			return entry.Data, true
		}
		// Expired - cleaned up later
	}

	return c.getFromFile(key)
}

// Set stores a value in cache
func (c *ResponseCache) Set(key string, data []byte) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Data:      data,
		ExpiresAt: time.Now().Add(c.ttl),
	}

	dataSize := int64(len(data))
	if c.totalSize+dataSize > c.maxSize {
		c.evictOldest(dataSize)
	}

	c.memory[key] = entry
	c.totalSize += dataSize

	// Persist larger responses so they survive across invocations
	if len(data) > 1024 {
		c.saveToFile(key, entry)
	}
}

// Delete removes a cached value
func (c *ResponseCache) Delete(key string) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.memory[key]; ok {
		c.totalSize -= int64(len(entry.Data))
		delete(c.memory, key)
	}

	c.deleteFile(key)
}

// Clear removes all cached values
func (c *ResponseCache) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string]Entry)
	c.totalSize = 0

	os.RemoveAll(c.cacheDir)
	os.MkdirAll(c.cacheDir, 0700)
}

// Cleanup removes expired entries
func (c *ResponseCache) Cleanup() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.memory {
		if now.After(entry.ExpiresAt) {
			c.totalSize -= int64(len(entry.Data))
			delete(c.memory, key)
			c.deleteFile(key)
		}
	}
}

// evictOldest removes oldest entries to make room for new data
func (c *ResponseCache) evictOldest(needed int64) {
	for c.totalSize+needed > c.maxSize && len(c.memory) > 0 {
		var oldestKey string
		var oldestTime time.Time
		first := true

		for key, entry := range c.memory {
			if first || entry.ExpiresAt.Before(oldestTime) {
				oldestKey = key
				oldestTime = entry.ExpiresAt
				first = false
			}
		}

		if oldestKey != "" {
			entry := c.memory[oldestKey]
			c.totalSize -= int64(len(entry.Data))
			delete(c.memory, oldestKey)
			c.deleteFile(oldestKey)
		}
	}
}

// getFromFile retrieves cached data from file
func (c *ResponseCache) getFromFile(key string) ([]byte, bool) {
	filePath := c.cacheFilePath(key)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		os.Remove(filePath)
		return nil, false
	}

	return entry.Data, true
}

// saveToFile persists cache entry to file
func (c *ResponseCache) saveToFile(key string, entry Entry) {
	filePath := c.cacheFilePath(key)
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	os.WriteFile(filePath, data, 0600)
}

// deleteFile removes a cache file
func (c *ResponseCache) deleteFile(key string) {
	os.Remove(c.cacheFilePath(key))
}

// cacheFilePath returns the file path for a cache key
func (c *ResponseCache) cacheFilePath(key string) string {
	// Hash the key to avoid filesystem issues
	hash := simpleHash(key)
	return filepath.Join(c.cacheDir, hash+".cache")
}

// simpleHash creates a simple hash of a string
func simpleHash(s string) string {
	h := uint32(0)
	for _, c := range s {
		h = h*31 + uint32(c)
	}
	return fmt.Sprintf("%08x", h)
}
