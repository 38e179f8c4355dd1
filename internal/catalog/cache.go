package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/backend-cetak/internal/pricing"
)

const (
	skuKeyPrefix   = "catalog:papers:sku:"
	usageKeyPrefix = "catalog:papers:usage:"
	allUsagesKey   = "all"
)

// Cache wraps Redis helpers for JSON payloads.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON unmarshals a cached JSON payload into dst. It reports whether the key existed.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serialises v as JSON and stores it with the configured TTL.
// A non-positive TTL disables writes.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Delete drops the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func skuCacheKey(sku string) string { return skuKeyPrefix + sku }

func usageCacheKey(usage pricing.PaperUsage) string {
	if usage == "" {
		return usageKeyPrefix + allUsagesKey
	}
	return usageKeyPrefix + string(usage)
}

// listCacheKeys names every usage list that may contain a stock.
func listCacheKeys() []string {
	return []string{
		usageCacheKey(""),
		usageCacheKey(pricing.UsageBWText),
		usageCacheKey(pricing.UsageInternalColor),
		usageCacheKey(pricing.UsageCovers),
	}
}
