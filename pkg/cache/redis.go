package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio-tracker/internal/config"
)

// ErrNotFound is returned when a key is not found in cache.
var ErrNotFound = errors.New("key not found in cache")

// RedisClient is a JSON-serializing Redis cache with domain key helpers.
type RedisClient struct {
	client *redis.Client
	config config.CacheConfig
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(cfg config.CacheConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: rdb,
		config: cfg,
	}, nil
}

// Set stores a JSON-marshaled value with TTL.
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value and unmarshals it into dest.
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes keys.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Ping checks the Redis connection.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Domain key helpers. Portfolio documents are cached per owner+portfolio,
// analytics per portfolio+section, quotes per symbol.

func portfolioKey(userID, portfolioID string) string {
	return fmt.Sprintf("portfolio:%s:%s", userID, portfolioID)
}

// SetPortfolio caches a portfolio document.
func (r *RedisClient) SetPortfolio(ctx context.Context, userID, portfolioID string, portfolio interface{}) error {
	return r.Set(ctx, portfolioKey(userID, portfolioID), portfolio, r.config.PortfolioTTL)
}

// GetPortfolio retrieves a cached portfolio document.
func (r *RedisClient) GetPortfolio(ctx context.Context, userID, portfolioID string, dest interface{}) error {
	return r.Get(ctx, portfolioKey(userID, portfolioID), dest)
}

// InvalidatePortfolio removes a portfolio and its analytics entries. Every
// mutation goes through here so cached reads never outlive a write by more
// than the analytics TTL.
func (r *RedisClient) InvalidatePortfolio(ctx context.Context, userID, portfolioID string) error {
	keys, err := r.client.Keys(ctx, fmt.Sprintf("*:%s:%s*", userID, portfolioID)).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.Delete(ctx, keys...)
	}
	return nil
}

// SetAnalytics caches an analytics report section for a portfolio.
func (r *RedisClient) SetAnalytics(ctx context.Context, userID, portfolioID, section string, report interface{}) error {
	key := fmt.Sprintf("analytics:%s:%s:%s", userID, portfolioID, section)
	return r.Set(ctx, key, report, r.config.AnalyticsTTL)
}

// GetAnalytics retrieves a cached analytics report section.
func (r *RedisClient) GetAnalytics(ctx context.Context, userID, portfolioID, section string, dest interface{}) error {
	key := fmt.Sprintf("analytics:%s:%s:%s", userID, portfolioID, section)
	return r.Get(ctx, key, dest)
}

// SetQuote caches a market quote by symbol.
func (r *RedisClient) SetQuote(ctx context.Context, symbol string, quote interface{}) error {
	return r.Set(ctx, "quote:"+symbol, quote, r.config.QuoteTTL)
}

// GetQuote retrieves a cached market quote.
func (r *RedisClient) GetQuote(ctx context.Context, symbol string, dest interface{}) error {
	return r.Get(ctx, "quote:"+symbol, dest)
}
