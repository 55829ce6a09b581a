package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "parsed-file:"

// Redis is a persistent registry backed by a redis key set.
type Redis struct {
	client *redis.Client
	ttl    time.Duration // zero means keys never expire
}

// NewRedis connects to redis and verifies the connection, retrying the ping
// with exponential backoff so a registry that is still starting up does not
// fail the process.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 15 * time.Second
	err = backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(b, ctx))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Seen(ctx context.Context, hash string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+hash).Result()
	if err != nil {
		return false, fmt.Errorf("registry lookup: %w", err)
	}
	return n > 0, nil
}

func (r *Redis) Mark(ctx context.Context, hash string) error {
	if err := r.client.Set(ctx, keyPrefix+hash, "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("registry mark: %w", err)
	}
	return nil
}
