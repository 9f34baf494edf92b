// Package cache keeps part stock snapshots in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fleetdepot/depot/internal/domain"
)

const keyPrefix = "depot:stock:part:"

func stockKey(partID uint) string {
	return keyPrefix + strconv.FormatUint(uint64(partID), 10)
}

type RedisStockCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStockCache(client *redis.Client, ttl time.Duration) *RedisStockCache {
	return &RedisStockCache{
		client: client,
		ttl:    ttl,
	}
}

// Connect opens a client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}

	return client, nil
}

func (c *RedisStockCache) Get(ctx context.Context, partID uint) (domain.PartStock, bool) {
	raw, err := c.client.Get(ctx, stockKey(partID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("stock cache read failed", zap.Uint("part_id", partID), zap.Error(err))
		}
		return domain.PartStock{}, false
	}

	var stock domain.PartStock
	if err = json.Unmarshal(raw, &stock); err != nil {
		zap.L().Warn("stock cache entry corrupt", zap.Uint("part_id", partID), zap.Error(err))
		return domain.PartStock{}, false
	}

	return stock, true
}

func (c *RedisStockCache) Set(ctx context.Context, stock domain.PartStock) {
	raw, err := json.Marshal(stock)
	if err != nil {
		zap.L().Warn("stock cache encode failed", zap.Uint("part_id", stock.PartID), zap.Error(err))
		return
	}

	if err = c.client.Set(ctx, stockKey(stock.PartID), raw, c.ttl).Err(); err != nil {
		zap.L().Warn("stock cache write failed", zap.Uint("part_id", stock.PartID), zap.Error(err))
	}
}

func (c *RedisStockCache) Invalidate(ctx context.Context, partIDs ...uint) {
	if len(partIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(partIDs))
	for _, id := range partIDs {
		keys = append(keys, stockKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		zap.L().Warn("stock cache invalidate failed", zap.Uints("part_ids", partIDs), zap.Error(err))
	}
}

// Noop is used when no Redis address is configured. Every read misses.
type Noop struct{}

func (Noop) Get(context.Context, uint) (domain.PartStock, bool) { return domain.PartStock{}, false }
func (Noop) Set(context.Context, domain.PartStock)              {}
func (Noop) Invalidate(context.Context, ...uint)                {}
