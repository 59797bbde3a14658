package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// SaveCart stores a serialized cart for a shopper session with a TTL
func (c *Client) SaveCart(ctx context.Context, sessionID string, data []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("cart:%s", sessionID), data, ttl).Err()
}

// LoadCart retrieves a serialized cart; returns nil with no error when
// the session has no cart yet
func (c *Client) LoadCart(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf("cart:%s", sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart failed: %w", err)
	}
	return data, nil
}

// DeleteCart removes a shopper session's cart
func (c *Client) DeleteCart(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("cart:%s", sessionID)).Err()
}

// SaveAdminSession stores an admin session token with a TTL
func (c *Client) SaveAdminSession(ctx context.Context, token string, ttl time.Duration) error {
	return c.rdb.Set(ctx, fmt.Sprintf("admin_session:%s", token), "1", ttl).Err()
}

// CheckAdminSession reports whether an admin session token is live
func (c *Client) CheckAdminSession(ctx context.Context, token string) (bool, error) {
	result, err := c.rdb.Exists(ctx, fmt.Sprintf("admin_session:%s", token)).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// SetStock caches a product's stock count
func (c *Client) SetStock(ctx context.Context, productID string, stock int) error {
	return c.rdb.Set(ctx, fmt.Sprintf("stock:%s", productID), stock, 0).Err()
}

// GetStock reads a product's cached stock count; found is false on a
// cache miss
func (c *Client) GetStock(ctx context.Context, productID string) (stock int, found bool, err error) {
	val, err := c.rdb.Get(ctx, fmt.Sprintf("stock:%s", productID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	stock, err = strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("bad cached stock for product %s: %w", productID, err)
	}
	return stock, true, nil
}
