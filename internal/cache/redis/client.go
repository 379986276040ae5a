package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/pkg/logger"
)

// Client is a thin idempotency index over Redis. The persistence trigger
// uses it to detect retried QA submissions across process instances.
type Client struct {
	client *redis.Client
}

func NewClient(host string, port int, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// MarkRecorded claims the hash of a QA pair. It returns true when this call
// is the first writer within the TTL window, false when an identical pair
// was already recorded recently.
func (c *Client) MarkRecorded(ctx context.Context, hash string, ttl time.Duration) (bool, error) {
	ok, err := c.client.SetNX(ctx, fmt.Sprintf("qa:%s", hash), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set idempotency key: %w", err)
	}

	return ok, nil
}
