package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects the shared client. Without REDIS_URL the client stays nil; the rate
// limiter passes requests through and the order cache falls back to memory.
func ConnectRedis(cfg *Config) {
	if cfg.RedisURL == "" {
		log.Println("⚠️  REDIS_URL not set, using in-memory order cache")
		return
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opt)

	res, err := client.Ping(Ctx).Result()
	if err != nil {
		log.Printf("❌ failed to connect to Redis: %v (continuing without it)", err)
		return
	}
	RedisClient = client
	log.Println("✅ Connected to Redis:", res)
}
