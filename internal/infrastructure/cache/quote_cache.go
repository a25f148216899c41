package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "dealerfin:quote:"

// QuoteCache implements port.QuoteCache on Redis string keys with a TTL.
type QuoteCache struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewQuoteCache(rdb redis.UniversalClient, ttl time.Duration) *QuoteCache {
	return &QuoteCache{rdb: rdb, ttl: ttl}
}

// Get reports a miss as (nil, false, nil).
func (c *QuoteCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, quoteKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get quote: %w", err)
	}
	return val, true, nil
}

func (c *QuoteCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, quoteKeyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set quote: %w", err)
	}
	return nil
}
