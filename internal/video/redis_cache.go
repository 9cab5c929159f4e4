package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"alcyxob/exercise-discovery/internal/config"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
)

const cacheKeyPrefix = "video:search:"

var ErrCacheDisabled = errors.New("redis address not configured")

type redisCache struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedisCache connects to Redis and verifies it with a ping.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (Cache, error) {
	if cfg.Addr == "" {
		return nil, ErrCacheDisabled
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisCache{log: log.With("service", "VideoCache"), rdb: rdb}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]domain.Video, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var videos []domain.Video
	if err := json.Unmarshal(raw, &videos); err != nil {
		c.log.Warn("discarding undecodable cache entry", "key", key, "error", err)
		return nil, false, nil
	}
	return videos, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, videos []domain.Video, ttl time.Duration) error {
	raw, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKeyPrefix+key, raw, ttl).Err()
}
