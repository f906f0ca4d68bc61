package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

const menuKeyPrefix = "menu:"

// MenuCache caches restaurant menus in Redis. Cache failures are logged
// and treated as misses so Postgres remains the source of truth.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewMenuCache builds the cache. A nil client disables caching.
func NewMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *MenuCache {
	return &MenuCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached menu for a restaurant, or (nil, false) on a miss.
func (m *MenuCache) Get(ctx context.Context, restaurantID string) ([]domain.Dish, bool) {
	if m == nil || m.client == nil {
		return nil, false
	}

	raw, err := m.client.Get(ctx, menuKeyPrefix+restaurantID).Bytes()
	if err != nil {
		if err != redis.Nil {
			m.logger.Warn("menu cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var dishes []domain.Dish
	if err := json.Unmarshal(raw, &dishes); err != nil {
		m.logger.Warn("menu cache decode failed", zap.Error(err))
		return nil, false
	}
	return dishes, true
}

// Set stores a restaurant menu.
func (m *MenuCache) Set(ctx context.Context, restaurantID string, dishes []domain.Dish) {
	if m == nil || m.client == nil {
		return
	}

	raw, err := json.Marshal(dishes)
	if err != nil {
		m.logger.Warn("menu cache encode failed", zap.Error(err))
		return
	}
	if err := m.client.Set(ctx, menuKeyPrefix+restaurantID, raw, m.ttl).Err(); err != nil {
		m.logger.Warn("menu cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached menu after a dish mutation.
func (m *MenuCache) Invalidate(ctx context.Context, restaurantID string) {
	if m == nil || m.client == nil {
		return
	}
	if err := m.client.Del(ctx, menuKeyPrefix+restaurantID).Err(); err != nil {
		m.logger.Warn("menu cache invalidate failed", zap.Error(err))
	}
}
