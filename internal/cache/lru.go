// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/schemagen-mcp/pkg/schemagen"
)

const keyLen = 24

// Entry is one cached schema.
type Entry struct {
	Key    string
	Schema *schemagen.Schema
	Text   string // serialized Schema
}

// SchemaCache provides thread-safe LRU caching for generated schemas.
// Concurrent computations of the same key run once.
type SchemaCache struct {
	cache *lru.Cache[string, *Entry]
	group singleflight.Group
}

// NewSchemaCache creates a new LRU cache with the specified maximum number of items.
func NewSchemaCache(maxItems int) (*SchemaCache, error) {
	c, err := lru.New[string, *Entry](maxItems)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{cache: c}, nil
}

// Key derives a stable cache key from the given inputs. Parts are length
// prefixed, so ("ab", "c") and ("a", "bc") differ.
func Key(parts ...[]byte) string {
	h := sha256.New()
	var size [8]byte
	for _, p := range parts {
		binary.BigEndian.PutUint64(size[:], uint64(len(p)))
		h.Write(size[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))[:keyLen]
}

// Get retrieves an entry from the cache by its key.
func (c *SchemaCache) Get(key string) (*Entry, bool) {
	return c.cache.Get(key)
}

// Put adds or updates an entry in the cache.
func (c *SchemaCache) Put(entry *Entry) {
	c.cache.Add(entry.Key, entry)
}

// GetOrCompute returns the entry cached under key, computing and caching it
// when absent. cached reports whether the entry was already present.
func (c *SchemaCache) GetOrCompute(key string, compute func() (*Entry, error)) (entry *Entry, cached bool, err error) {
	if e, ok := c.cache.Get(key); ok {
		return e, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if e, ok := c.cache.Get(key); ok {
			return e, nil
		}
		e, err := compute()
		if err != nil {
			return nil, err
		}
		if e.Key != key {
			return nil, fmt.Errorf("cache: computed entry has key %q, want %q", e.Key, key)
		}
		c.cache.Add(key, e)
		return e, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Entry), false, nil
}

// Keys returns the cached keys, oldest first.
func (c *SchemaCache) Keys() []string {
	return c.cache.Keys()
}

// Len returns the current number of items in the cache.
func (c *SchemaCache) Len() int {
	return c.cache.Len()
}
