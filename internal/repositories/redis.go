package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Next-Gene/primecare/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the cart cache and verifies the connection.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis", slog.String("addr", cfg.Redis.Addr))

	return client, nil
}
