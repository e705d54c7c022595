package database

import (
	"github.com/docuchat-ai/docuchat/internal/config"
	"github.com/go-redis/redis"
)

func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Pass,
		DB:       0,
	})
	if err := client.Ping().Err(); err != nil {
		return nil, err
	}
	return client, nil
}
