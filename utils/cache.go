// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"repairdesk/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (chat history, sessions).
	CacheClient *redis.Client
	// QuotaCacheClient is the dedicated client for per-caller chat quota counters.
	QuotaCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitQuotaCache initializes the Redis client for chat quota counters.
func InitQuotaCache() {
	QuotaCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQuotaDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := QuotaCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Quota): %v", err)
	}
}

// GetQuotaCacheClient returns the Redis client for chat quota counters.
func GetQuotaCacheClient() *redis.Client {
	if QuotaCacheClient == nil {
		InitQuotaCache()
	}
	return QuotaCacheClient
}

// InitRedis initializes all Redis clients used by the service.
func InitRedis() {
	InitCache()
	InitQuotaCache()
}
