// Package cache keeps derived translation metadata in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"movie-i18n/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix         = "movie-i18n:"
	connectionTimeout = 5 * time.Second
)

// LanguageCache stores language lists, such as the distinct translated
// languages of a model, under a TTL. A LanguageCache without a client is
// disabled and always calls through to the loader.
type LanguageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewLanguageCache connects to Redis. An empty address yields a disabled cache.
func NewLanguageCache(cfg config.RedisConfig, logger *logrus.Logger) (*LanguageCache, error) {
	if cfg.Addr == "" {
		logger.Info("Redis address not set, language cache disabled")
		return &LanguageCache{ttl: cfg.TTL, logger: logger}, nil
	}

	addr := cfg.Addr
	if parsed, err := url.Parse(cfg.Addr); err == nil && parsed.Scheme == "redis" {
		addr = parsed.Host
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithField("addr", addr).Info("Language cache connected to Redis")
	return &LanguageCache{client: client, ttl: cfg.TTL, logger: logger}, nil
}

func (c *LanguageCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Remember returns the cached list for key or stores the result of load.
// Redis failures are logged and the loader result is returned.
func (c *LanguageCache) Remember(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if !c.Enabled() {
		return load(ctx)
	}

	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	switch {
	case err == nil:
		if val == "" {
			return []string{}, nil
		}
		return strings.Split(val, ","), nil
	case !errors.Is(err, redis.Nil):
		c.logger.WithError(err).WithField("key", key).Warn("Failed to read language cache")
	}

	codes, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, keyPrefix+key, strings.Join(codes, ","), c.ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Failed to write language cache")
	}
	return codes, nil
}

// Invalidate drops the cached lists for keys.
func (c *LanguageCache) Invalidate(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}
	return c.client.Del(ctx, prefixed...).Err()
}

func (c *LanguageCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
