package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const settingsSnapshotKey = "hangwa:settings:snapshot"

type Client struct {
	rdb *redis.Client
}

func Initialize(ctx context.Context, redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func NewWithClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// GetSnapshot reports ok=false on a cache miss.
func (c *Client) GetSnapshot(ctx context.Context) (map[string]string, bool, error) {
	val, err := c.rdb.Get(ctx, settingsSnapshotKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get settings snapshot: %w", err)
	}

	var snapshot map[string]string
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal settings snapshot: %w", err)
	}
	return snapshot, true, nil
}

func (c *Client) SetSnapshot(ctx context.Context, snapshot map[string]string, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal settings snapshot: %w", err)
	}
	return c.rdb.Set(ctx, settingsSnapshotKey, data, ttl).Err()
}

func (c *Client) InvalidateSnapshot(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsSnapshotKey).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
