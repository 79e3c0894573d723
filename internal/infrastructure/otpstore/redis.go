package otpstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

// Redis is the networked Store. Expiry rides on the key TTL, so there is
// no lazy eviction to do: an expired key is simply gone.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Store(ctx context.Context, email, code string) error {
	if err := r.client.Set(ctx, keyPrefix+email, code, r.ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}
	return nil
}

func (r *Redis) Verify(ctx context.Context, email, candidate string) (bool, error) {
	val, err := r.client.Get(ctx, keyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read otp: %w", err)
	}
	return val == candidate, nil
}

func (r *Redis) Clear(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("clear otp: %w", err)
	}
	return nil
}
