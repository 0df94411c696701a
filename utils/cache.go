// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"hairbook/config"

	"github.com/go-redis/redis/v8"
)

// RevokedCachePrefix is the prefix used for revoked-token keys in the auth cache.
const RevokedCachePrefix = "revoked:"

// InitAuthCache connects the Redis client used by the revocation cache.
func InitAuthCache() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (Auth Cache): %w", err)
	}
	return client, nil
}
