package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
)

const redisKeyPrefix = "oracle:report:"

// Redis shares the cache between processes. Expiry is left to Redis.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis wraps an existing client.
func NewRedis(rdb *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

// Lookup fetches and decodes a cached report. Redis failures count as a miss.
func (c *Redis) Lookup(ctx context.Context, serviceID string, p profile.Profile) (*report.Report, bool) {
	raw, err := c.rdb.Get(ctx, redisKeyPrefix+Key(serviceID, p)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.WithError(err).Warn("report lookup failed")
		return nil, false
	}

	var r report.Report
	if err := json.Unmarshal(raw, &r); err != nil {
		log.WithError(err).Warn("discarding undecodable cached report")
		return nil, false
	}
	return &r, true
}

// Store writes the report with a native TTL.
func (c *Redis) Store(ctx context.Context, serviceID string, p profile.Profile, r *report.Report) error {
	if r == nil {
		return errors.New("nil report")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+Key(serviceID, p), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("store report: %w", err)
	}
	return nil
}
