package exercisedb

import (
	"sync"

	"github.com/claude/webfit/internal/models"
)

// Cache maps a normalized muscle identifier to the records last fetched for
// it. Entries never expire; an empty entry is still a hit.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]models.ExerciseRecord
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]models.ExerciseRecord)}
}

// Get returns the cached records for key and whether the key is present.
func (c *Cache) Get(key string) ([]models.ExerciseRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	recs, ok := c.entries[key]
	return recs, ok
}

// Put stores records under key, replacing any previous entry.
func (c *Cache) Put(key string, records []models.ExerciseRecord) {
	if records == nil {
		records = []models.ExerciseRecord{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = records
}

// Len returns the number of cached identifiers.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot returns a shallow copy of the cache contents.
func (c *Cache) Snapshot() map[string][]models.ExerciseRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]models.ExerciseRecord, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
