// Package cache fronts the composed schedule with Redis. Cache trouble
// is logged and swallowed: the read path must keep working off postgres
// when Redis is down.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coachly/internal/pkg/config"
	"coachly/internal/usecase/queries"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewScheduleCache(client *redis.Client, cfg config.RedisConfig) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: cfg.CacheTTL}
}

func (c *ScheduleCache) GetSlots(ctx context.Context, key string) ([]queries.SlotView, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("schedule cache get failed", "key", key, "error", err.Error())
		}
		return nil, false
	}

	var slots []queries.SlotView
	if err := json.Unmarshal(data, &slots); err != nil {
		slog.Warn("schedule cache holds undecodable entry", "key", key, "error", err.Error())
		return nil, false
	}
	return slots, true
}

func (c *ScheduleCache) SetSlots(ctx context.Context, key string, slots []queries.SlotView) {
	data, err := json.Marshal(slots)
	if err != nil {
		slog.Warn("failed to encode slots for cache", "key", key, "error", err.Error())
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("schedule cache set failed", "key", key, "error", err.Error())
	}
}

// InvalidateProvider drops every cached window for the provider. Keys
// follow the "schedule:{providerID}:..." pattern set by the query side.
func (c *ScheduleCache) InvalidateProvider(ctx context.Context, providerID uuid.UUID) {
	pattern := "schedule:" + providerID.String() + ":*"

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("schedule cache scan failed", "pattern", pattern, "error", err.Error())
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("schedule cache delete failed", "pattern", pattern, "error", err.Error())
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
