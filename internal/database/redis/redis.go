package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/asre459/menna/internal/config"
)

var Client *redis.Client

// InitRedis connects the shared Redis client. Redis is optional: with no
// address configured the client stays nil and login lockout is skipped.
func InitRedis(cfg *config.RedisConfig) {
	if cfg.Address == "" {
		log.Println("REDIS_ADDR not set, login lockout is disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Ping(ctx).Err(); err != nil {
		log.Printf("Error connecting to Redis: %s", err)
	} else {
		log.Println("Successfully connected to Redis")
	}
}

func CloseRedis() {
	if Client != nil {
		if err := Client.Close(); err != nil {
			log.Printf("Error closing Redis client: %s", err)
		}
	}
}
