package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

type Client struct {
	*redis.Client
}

func NewClient(opts Options) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:        opts.Addr,
			Password:    opts.Password,
			DB:          opts.DB,
			DialTimeout: opts.DialTimeout,
		}),
	}
}

// Connect creates the client and checks the server answers.
func Connect(ctx context.Context, opts Options) (*Client, error) {
	const op = "storage.redis.Connect"

	c := NewClient(opts)
	if err := c.HealthCheck(ctx); err != nil {
		_ = c.Client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
