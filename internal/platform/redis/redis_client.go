package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"todo_backend/internal/config"
)

// NewRedisClient connects to Redis using the given configuration.
// The caller decides whether a failure is fatal; the task list cache
// degrades to pass-through when Redis is unavailable.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
