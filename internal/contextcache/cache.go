// Package contextcache holds reference text extracted from user-uploaded
// documents, keyed by (user, subject). Entries live only for the lifetime of
// the process: they are never persisted and never expire on a timer. Running
// multiple backend instances therefore gives each instance its own view.
package contextcache

import (
	"sync"

	"github.com/google/uuid"
)

type key struct {
	userID  uuid.UUID
	subject string
}

// Cache is an in-process store of uploaded reference text
type Cache struct {
	mu      sync.RWMutex
	entries map[key]string
}

// New creates an empty cache
func New() *Cache {
	return &Cache{
		entries: make(map[key]string),
	}
}

// Store replaces any previously stored text for the (user, subject) pair.
// Concurrent stores race with last-write-wins semantics.
func (c *Cache) Store(userID uuid.UUID, subject, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key{userID: userID, subject: subject}] = text
}

// Fetch returns the stored text for the pair, or "" if nothing was stored
func (c *Cache) Fetch(userID uuid.UUID, subject string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key{userID: userID, subject: subject}]
}
