package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sreeram023/event-approval-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used for sequence counters.
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// NextSequence atomically increments and returns the counter stored at key.
// Used for request ids (per-year) and user ids; INCR creates the key at 1.
func NextSequence(ctx context.Context, key string) (int64, error) {
	if redisClient == nil {
		return 0, fmt.Errorf("redis not initialized")
	}
	return redisClient.Incr(ctx, key).Result()
}

// CloseRedis releases the client; safe to call when InitRedis never ran.
func CloseRedis() error {
	if redisClient == nil {
		return nil
	}
	return redisClient.Close()
}
