package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

// CountCache holds the total galaxy count. The catalog only changes on
// import, which calls Invalidate.
type CountCache interface {
	Get(ctx context.Context) (int64, bool, error)
	Set(ctx context.Context, n int64) error
	Invalidate(ctx context.Context) error
}

const galaxyCountKey = "lsbmorph:galaxy_count"

type noopCountCache struct{}

func NewNoopCountCache() CountCache { return noopCountCache{} }

func (noopCountCache) Get(context.Context) (int64, bool, error) { return 0, false, nil }
func (noopCountCache) Set(context.Context, int64) error         { return nil }
func (noopCountCache) Invalidate(context.Context) error         { return nil }

type redisCountCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCountCache connects to addr and pings it before returning.
func NewRedisCountCache(log *logger.Logger, addr string, ttl time.Duration) (CountCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisCountCache{
		log: log.With("service", "RedisCountCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *redisCountCache) Get(ctx context.Context) (int64, bool, error) {
	n, err := c.rdb.Get(ctx, galaxyCountKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *redisCountCache) Set(ctx context.Context, n int64) error {
	return c.rdb.Set(ctx, galaxyCountKey, n, c.ttl).Err()
}

func (c *redisCountCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, galaxyCountKey).Err()
}

func (c *redisCountCache) Close() error {
	return c.rdb.Close()
}
