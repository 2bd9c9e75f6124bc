package fetch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/logger"
)

const cachePrefix = "career-auditor:fetch:"

// CacheConfig configures the optional Redis cache in front of a Fetcher.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis-url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Cached serves documents from Redis and fills it from the wrapped Fetcher.
// Cache failures are logged and never fail a fetch.
type Cached struct {
	next   Fetcher
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// Dial connects to Redis and verifies the connection.
func Dial(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return client, nil
}

func NewCached(next Fetcher, client *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cached{next: next, client: client, ttl: ttl, logger: logger.WithFields(log)}
}

func (c *Cached) Fetch(ctx context.Context, target string) (string, error) {
	key := CacheKey(target)
	log := c.logger.With(zap.String(logger.FieldURL, target))

	body, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		log.Debug("cache hit")
		return body, nil
	case err != redis.Nil:
		log.Warn("cache read failed", zap.Error(err))
	}

	body, err = c.next.Fetch(ctx, target)
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
	return body, nil
}

// Close closes the Redis connection.
func (c *Cached) Close() error {
	return c.client.Close()
}

// CacheKey derives the Redis key for a target address.
func CacheKey(target string) string {
	hash := sha256.Sum256([]byte(target))
	return fmt.Sprintf("%s%x", cachePrefix, hash[:12])
}
