package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ReportCache caches the assembled dashboard report for the current day.
// The snapshot row in Postgres is the durable record; this cache only spares
// the dashboard from recomputing aggregates on every load.
type ReportCache struct {
	redis *RedisClient
}

// NewReportCache creates a new ReportCache.
func NewReportCache(redis *RedisClient) *ReportCache {
	return &ReportCache{redis: redis}
}

// key returns the Redis key for a given calendar day (YYYY-MM-DD).
func (c *ReportCache) key(date string) string {
	return fmt.Sprintf("report:dashboard:%s", date)
}

// calculateTTL returns the time remaining until local end of day, so a
// cached report never survives into the next calendar day.
func (c *ReportCache) calculateTTL(now time.Time) time.Duration {
	eod := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	ttl := time.Until(eod)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}

// Set stores the dashboard payload for the given day.
func (c *ReportCache) Set(ctx context.Context, date string, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal dashboard report: %w", err)
	}
	return c.redis.Set(ctx, c.key(date), string(data), c.calculateTTL(time.Now()))
}

// Get loads a cached dashboard payload into dst. Returns false on a miss.
func (c *ReportCache) Get(ctx context.Context, date string, dst interface{}) (bool, error) {
	raw, err := c.redis.Get(ctx, c.key(date))
	if err != nil {
		if IsNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("unmarshal dashboard report: %w", err)
	}
	return true, nil
}

// Invalidate drops the cached report for the given day so the next
// dashboard load recomputes.
func (c *ReportCache) Invalidate(ctx context.Context, date string) error {
	return c.redis.Delete(ctx, c.key(date))
}
