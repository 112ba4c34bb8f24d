package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis settings of the user store. Addr is either
// host:port or a redis:// URL; Password and DB apply to the former only.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

func (c Config) options() (*redis.Options, error) {
	if strings.HasPrefix(c.Addr, "redis://") || strings.HasPrefix(c.Addr, "rediss://") {
		return redis.ParseURL(c.Addr)
	}
	return &redis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB}, nil
}

// Open builds a client for cfg and returns a user repository once the
// server answers PING.
func Open(ctx context.Context, cfg Config) (*UserRepository, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, fmt.Errorf("redis options: %w", err)
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return NewUserRepository(client), nil
}
