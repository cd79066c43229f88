package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"

	"github.com/asre459/menna/internal/database/redis"
)

type RedisRepo struct {
	client *redis_v9.Client
}

func NewRedisRepo() *RedisRepo {
	return &RedisRepo{
		client: redis.Client,
	}
}

// Enabled reports whether a Redis backend was configured.
func (rr *RedisRepo) Enabled() bool {
	return rr != nil && rr.client != nil
}

func (rr *RedisRepo) SaveInt(ctx context.Context, key string, value int64, ltime time.Duration) (bool, error) {
	if !rr.Enabled() {
		return false, nil
	}
	err := rr.client.Set(ctx, key, value, ltime).Err()
	if err != nil {
		return false, fmt.Errorf("error saving int64 value to cache: %s", err)
	}
	return true, nil
}

func (rr *RedisRepo) GetInt(ctx context.Context, key string) int64 {
	if !rr.Enabled() {
		return 0
	}
	value, err := rr.client.Get(ctx, key).Int64()
	if err != nil {
		if err != redis_v9.Nil {
			log.Printf("error get int64 value in cache: %s. Return 0", err)
		}
		return 0
	}
	return value
}
