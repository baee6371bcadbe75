package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultTimeout = 5 * time.Second
	clientName     = "inventory-api"
)

// Config holds the denylist store settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

func (c Config) options() (*redis.Options, error) {
	if c.Addr == "" {
		return nil, errors.New("redis: address is required")
	}
	if c.DB < 0 {
		return nil, fmt.Errorf("redis: invalid database index %d", c.DB)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		ClientName:   clientName,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}, nil
}

// Connect opens the client and pings once, so a wrong password or an
// unreachable server stops startup instead of the first logout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := Ping(client)(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// Ping returns a readiness check for client, bounded by its dial timeout.
func Ping(client *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, client.Options().DialTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}
