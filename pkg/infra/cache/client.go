package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Client wraps the redis connection used for queue-change events and the
// recent-verdict TTL maps.
type Client struct {
	redis   *redis.Client
	ttlMaps map[string]*TTLMap
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{
		redis:   rdb,
		ttlMaps: make(map[string]*TTLMap),
	}, nil
}

func (c *Client) Redis() *redis.Client {
	return c.redis
}

func (c *Client) Close() error {
	return c.redis.Close()
}

// CreateTTLMap registers a named in-process TTL map on the client.
func (c *Client) CreateTTLMap(name string, ttl time.Duration) *TTLMap {
	m := NewTTLMap(ttl)
	c.ttlMaps[name] = m
	return m
}

func (c *Client) GetTTLMap(name string) *TTLMap {
	return c.ttlMaps[name]
}
