package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/asif-dev/machbazar-storefront/config"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
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

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client.Close()
		client = nil
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance, or nil when Redis is disabled
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

// AcquireSubmissionLock takes the per-cart checkout lock so that two
// replicas cannot run the same cart's submission concurrently. Returns
// false when another submission already holds the lock.
func AcquireSubmissionLock(ctx context.Context, cartKey string, ttl time.Duration) (bool, error) {
	if client == nil {
		return true, nil
	}
	key := fmt.Sprintf("checkout:lock:%s", cartKey)
	ok, err := client.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		logger.Error("Failed to acquire submission lock", err, map[string]interface{}{
			"cart_key": cartKey,
		})
		return false, err
	}
	return ok, nil
}

// ReleaseSubmissionLock releases the per-cart checkout lock
func ReleaseSubmissionLock(ctx context.Context, cartKey string) error {
	if client == nil {
		return nil
	}
	key := fmt.Sprintf("checkout:lock:%s", cartKey)
	if err := client.Del(ctx, key).Err(); err != nil {
		logger.Error("Failed to release submission lock", err, map[string]interface{}{
			"cart_key": cartKey,
		})
		return err
	}
	return nil
}

// MirrorQuote stores the serialized shipping quote for a cart key with a TTL
// so other replicas see the same quote state
func MirrorQuote(ctx context.Context, cartKey string, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	key := fmt.Sprintf("quote:%s", cartKey)
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Error("Failed to mirror shipping quote", err, map[string]interface{}{
			"cart_key": cartKey,
		})
		return err
	}
	return nil
}

// DropQuote removes the mirrored quote for a cart key
func DropQuote(ctx context.Context, cartKey string) error {
	if client == nil {
		return nil
	}
	key := fmt.Sprintf("quote:%s", cartKey)
	return client.Del(ctx, key).Err()
}

// GetMirroredQuote fetches the mirrored quote payload for a cart key.
// Returns nil without error when no quote is stored.
func GetMirroredQuote(ctx context.Context, cartKey string) ([]byte, error) {
	if client == nil {
		return nil, nil
	}
	key := fmt.Sprintf("quote:%s", cartKey)
	payload, err := client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to read mirrored quote", err, map[string]interface{}{
			"cart_key": cartKey,
		})
		return nil, err
	}
	return payload, nil
}
