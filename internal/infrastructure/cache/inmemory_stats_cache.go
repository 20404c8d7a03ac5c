package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appcrm "github.com/travvip/backend/internal/application/crm"
)

type statsEntry struct {
	stats     *appcrm.DashboardStats
	expiresAt time.Time
}

// InMemoryStatsCache is a per-process stats cache for deployments that run
// without Redis. Entries are checked for expiry on read, so the map stays
// bounded by the number of organizations.
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]statsEntry
	now     func() time.Time
}

// NewInMemoryStatsCache creates an in-memory stats cache
func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{
		entries: make(map[uuid.UUID]statsEntry),
		now:     time.Now,
	}
}

// Get returns the cached aggregate, if present and not expired
func (c *InMemoryStatsCache) Get(_ context.Context, orgID uuid.UUID) (*appcrm.DashboardStats, bool) {
	c.mu.RLock()
	entry, ok := c.entries[orgID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, orgID)
		c.mu.Unlock()
		return nil, false
	}
	return entry.stats, true
}

// Set stores the aggregate for ttl
func (c *InMemoryStatsCache) Set(_ context.Context, orgID uuid.UUID, stats *appcrm.DashboardStats, ttl time.Duration) {
	c.mu.Lock()
	c.entries[orgID] = statsEntry{stats: stats, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}
