package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Dashboard aggregates, rebuilt from Postgres on miss.
	KeyStats          = "dashboard:stats"
	KeyMonthlyRevenue = "dashboard:monthly_revenue"
	KeyLowStock       = "dashboard:low_stock"
)

var TTLDashboard = 5 * time.Minute

// Cache is a thin read-through layer over Redis. A nil *Cache is valid and
// behaves as a permanent miss, so callers need no availability checks.
type Cache struct {
	rdb *redis.Client
}

func New(addr string) *Cache {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
}

func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
