package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

const catalogKey = "catalog:products"

// Init initializes the Redis connection. Redis is optional; callers should
// treat a nil client as "cache disabled".
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client = nil
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance (nil when disabled)
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// GetCatalog returns the cached storefront product listing, if any.
func GetCatalog(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	val, err := client.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to read catalog cache", err, nil)
		return nil, false
	}
	return val, true
}

// SetCatalog caches the storefront product listing.
func SetCatalog(ctx context.Context, payload []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	if err := client.Set(ctx, catalogKey, payload, ttl).Err(); err != nil {
		logger.Error("Failed to write catalog cache", err, nil)
	}
}

// InvalidateCatalog drops the cached product listing after a catalog write.
func InvalidateCatalog(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, catalogKey).Err(); err != nil {
		logger.Error("Failed to invalidate catalog cache", err, nil)
	}
}
