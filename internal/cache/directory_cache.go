package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/vicriadty/cafe-app-ai/internal/model"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DirectoryCache caches the public restaurant-by-slug projection in Redis.
// All failures degrade to a cache miss; the database stays authoritative.
type DirectoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDirectoryCache(client *redis.Client, ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{client: client, ttl: ttl}
}

func slugKey(slug string) string {
	return "restaurant:slug:" + slug
}

func (c *DirectoryCache) GetBySlug(ctx context.Context, slug string) (*model.Restaurant, bool) {
	payload, err := c.client.Get(ctx, slugKey(slug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().Warn("Cache read failed", zap.String("slug", slug), zap.Error(err))
		}
		return nil, false
	}

	var restaurant model.Restaurant
	if err := json.Unmarshal(payload, &restaurant); err != nil {
		logger.GetLogger().Warn("Cache payload corrupt", zap.String("slug", slug), zap.Error(err))
		return nil, false
	}
	return &restaurant, true
}

func (c *DirectoryCache) SetBySlug(ctx context.Context, restaurant *model.Restaurant) {
	payload, err := json.Marshal(restaurant)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slugKey(restaurant.Slug), payload, c.ttl).Err(); err != nil {
		logger.GetLogger().Warn("Cache write failed", zap.String("slug", restaurant.Slug), zap.Error(err))
	}
}

func (c *DirectoryCache) Invalidate(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, slugKey(slug))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.GetLogger().Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
