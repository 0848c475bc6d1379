// Package ratelimit enforces per-IP and per-address drip limits over Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// RateLimiter manages request counters in Redis
type RateLimiter struct {
	client     *redis.Client
	perIP      int
	perAddress int
	window     time.Duration
}

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Redis connection established")

	return client, nil
}

// NewRateLimiter creates a rate limiter from the config map produced by
// config.RateLimitConfig.
func NewRateLimiter(client *redis.Client, config map[string]interface{}) *RateLimiter {
	return &RateLimiter{
		client:     client,
		perIP:      config["per_ip"].(int),
		perAddress: config["per_address"].(int),
		window:     config["window"].(time.Duration),
	}
}

func ipKey(ip string) string {
	return fmt.Sprintf("ratelimit:ip:%s", ip)
}

func addressKey(address string) string {
	return fmt.Sprintf("ratelimit:address:%s", address)
}

// CheckIPLimit reports whether an IP has exhausted its request budget
func (rl *RateLimiter) CheckIPLimit(ctx context.Context, ip string) (bool, error) {
	count, err := rl.GetCurrentCount(ctx, ipKey(ip))
	if err != nil {
		return false, err
	}
	return count >= rl.perIP, nil
}

// CheckAddressLimit reports whether a recipient address has exhausted its budget
func (rl *RateLimiter) CheckAddressLimit(ctx context.Context, address string) (bool, error) {
	count, err := rl.GetCurrentCount(ctx, addressKey(address))
	if err != nil {
		return false, err
	}
	return count >= rl.perAddress, nil
}

// IncrementIPCounter increments the counter for an IP address
func (rl *RateLimiter) IncrementIPCounter(ctx context.Context, ip string) error {
	return rl.incrementCounter(ctx, ipKey(ip))
}

// IncrementAddressCounter increments the counter for a recipient address
func (rl *RateLimiter) IncrementAddressCounter(ctx context.Context, address string) error {
	return rl.incrementCounter(ctx, addressKey(address))
}

func (rl *RateLimiter) incrementCounter(ctx context.Context, key string) error {
	pipe := rl.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment counter: %w", err)
	}
	return nil
}

// GetCurrentCount returns the current counter value for a key
func (rl *RateLimiter) GetCurrentCount(ctx context.Context, key string) (int, error) {
	count, err := rl.client.Get(ctx, key).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current count: %w", err)
	}
	return count, nil
}

// GetRemainingTime returns the time until the counter for a key expires
func (rl *RateLimiter) GetRemainingTime(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := rl.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get TTL: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Reset clears the counter for a key
func (rl *RateLimiter) Reset(ctx context.Context, key string) error {
	return rl.client.Del(ctx, key).Err()
}

// Close closes the Redis client connection
func (rl *RateLimiter) Close() error {
	return rl.client.Close()
}
