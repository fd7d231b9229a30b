package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter bounds how often a key may pass within a window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type redisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(addr, password string, db int) RateLimiter {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisRateLimiter{client: client}
}

// Allow implements RateLimiter with a fixed window: INCR the key and set
// its expiry on first use. Redis being unreachable fails open so the API
// keeps serving without the limiter.
func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️  Rate limiter unavailable: %v\n", err)
		return true
	}

	return incr.Val() <= int64(limit)
}
