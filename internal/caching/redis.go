package caching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions holds the connection settings for the shared session store.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NormalizeAddr strips a redis:// or rediss:// scheme so that either form
// of REDIS_ADDR is accepted.
func NormalizeAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	for _, scheme := range []string{"redis://", "rediss://"} {
		if strings.HasPrefix(addr, scheme) {
			return strings.TrimSuffix(strings.TrimPrefix(addr, scheme), "/")
		}
	}
	return addr
}

// NewRedisClient connects to Redis and verifies connectivity with a ping.
// The client is closed again if the ping fails.
func NewRedisClient(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*redis.Client, error) {
	addr := NormalizeAddr(opts.Addr)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	logger.Info("Redis connection established", zap.String("addr", addr), zap.Int("db", opts.DB))
	return client, nil
}
