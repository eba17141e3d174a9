package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

const distanceKeyPrefix = "distance:"

type cachedDistance struct {
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds *float64 `json:"duration_seconds"`
	Provider        string   `json:"provider"`
}

// RedisDistanceCache stores resolved pairs in Redis under a TTL.
type RedisDistanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDistanceCache(rdb *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{rdb: rdb, ttl: ttl}
}

func (c *RedisDistanceCache) Get(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (*domain.DistanceResult, error) {
	raw, err := c.rdb.Get(ctx, distanceKeyPrefix+pairKey(origin, destination, profile)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: redis get: %w", err)
	}

	var cd cachedDistance
	if err := json.Unmarshal([]byte(raw), &cd); err != nil {
		return nil, fmt.Errorf("cache: decode cached distance: %w", err)
	}

	return &domain.DistanceResult{
		DistanceMeters:  cd.DistanceMeters,
		DurationSeconds: cd.DurationSeconds,
		Provider:        cd.Provider,
	}, nil
}

func (c *RedisDistanceCache) Put(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
	res domain.DistanceResult,
) error {
	payload, err := json.Marshal(cachedDistance{
		DistanceMeters:  res.DistanceMeters,
		DurationSeconds: res.DurationSeconds,
		Provider:        res.Provider,
	})
	if err != nil {
		return fmt.Errorf("cache: encode distance: %w", err)
	}

	key := distanceKeyPrefix + pairKey(origin, destination, profile)
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}
