package memory

import (
	"context"
	"sync"
	"time"

	"fanforge/contexts/identity-access/authorization-service/ports"
)

type cacheEntry struct {
	permissions []string
	expiresAt   time.Time
}

// PermissionCache is an in-process TTL cache keyed by user ID. Expiry is
// checked against the caller-supplied now so tests stay deterministic.
type PermissionCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func NewPermissionCache() *PermissionCache {
	return &PermissionCache{entries: make(map[string]cacheEntry)}
}

var _ ports.PermissionCache = (*PermissionCache)(nil)

func (c *PermissionCache) Get(_ context.Context, userID string, now time.Time) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if !now.Before(entry.expiresAt) {
		delete(c.entries, userID)
		return nil, false, nil
	}
	out := make([]string, len(entry.permissions))
	copy(out, entry.permissions)
	return out, true, nil
}

func (c *PermissionCache) Set(_ context.Context, userID string, permissions []string, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := make([]string, len(permissions))
	copy(stored, permissions)
	c.entries[userID] = cacheEntry{permissions: stored, expiresAt: expiresAt}
	return nil
}

func (c *PermissionCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}
