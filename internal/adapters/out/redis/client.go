// Package redis implements the volatile stores of the dispatch core on Redis:
// the last-known position cache, courier presence, one-time codes and the
// fixed-window rate limiter. All multi-step updates run as Lua scripts so
// each one is atomic on the server.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// NewClient parses url (redis://[:password@]host:port/db) and checks the connection.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
