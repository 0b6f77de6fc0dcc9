// Package redis hosts the gateway's only durable session state, the bearer
// token vault. The connection is shared with the readiness probe.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config is the connection slice the vault needs from the environment.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a client and proves the instance is reachable with a ping
// before anything is allowed to depend on it. Timeout falls back to
// defaultPingTimeout when unset.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
