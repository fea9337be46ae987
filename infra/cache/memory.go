// Package cache provides snapshot cache implementations.
package cache

import (
	"context"
	"sync"

	"github.com/amirasaad/proppilot/pkg/cache"
	"github.com/amirasaad/proppilot/pkg/domain"
)

// MemorySnapshotCache is an in-process SnapshotCache, used in tests and as a
// fallback when no Redis mirror is configured.
type MemorySnapshotCache struct {
	mu       sync.RWMutex
	accounts []domain.Account
	stored   bool
}

// NewMemorySnapshotCache creates an empty in-memory snapshot cache.
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{}
}

// Read returns the mirrored collection, or cache.ErrNoSnapshot when nothing
// has been written yet.
func (c *MemorySnapshotCache) Read(context.Context) ([]domain.Account, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.stored {
		return nil, cache.ErrNoSnapshot
	}
	return domain.CloneAccounts(c.accounts), nil
}

// Write replaces the mirrored collection.
func (c *MemorySnapshotCache) Write(_ context.Context, accounts []domain.Account) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = domain.CloneAccounts(accounts)
	c.stored = true
	return nil
}

var _ cache.SnapshotCache = (*MemorySnapshotCache)(nil)
