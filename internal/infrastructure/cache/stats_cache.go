// Package cache provides short-lived caches for computed read models.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appcrm "github.com/travvip/backend/internal/application/crm"
)

// RedisStatsCache stores dashboard aggregates in Redis so every instance
// behind the load balancer shares one copy.
type RedisStatsCache struct {
	client    *redis.Client
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisStatsCache creates a stats cache with an existing Redis client
func NewRedisStatsCache(client *redis.Client, logger *zap.Logger) *RedisStatsCache {
	return &RedisStatsCache{
		client:    client,
		keyPrefix: "travvip:dashboard:stats:",
		logger:    logger,
	}
}

func (c *RedisStatsCache) key(orgID uuid.UUID) string {
	return c.keyPrefix + orgID.String()
}

// Get returns the cached aggregate, if present. Lookup failures count as
// misses so a Redis outage only costs a recompute.
func (c *RedisStatsCache) Get(ctx context.Context, orgID uuid.UUID) (*appcrm.DashboardStats, bool) {
	raw, err := c.client.Get(ctx, c.key(orgID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("stats cache lookup failed", zap.Error(err))
		}
		return nil, false
	}

	var stats appcrm.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.Warn("stats cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

// Set stores the aggregate for ttl. Best-effort.
func (c *RedisStatsCache) Set(ctx context.Context, orgID uuid.UUID, stats *appcrm.DashboardStats, ttl time.Duration) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(orgID), raw, ttl).Err(); err != nil {
		c.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
