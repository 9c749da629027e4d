package cache

import (
	"context"
	"time"

	"music-stream/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the optional L2 tier. Returns nil when addr is
// empty or the server is unreachable; the cache degrades to memory-only.
func NewRedisClient(ctx context.Context, addr, username, password string) *redis.Client {
	if addr == "" || addr == ":" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"addr": addr, "error": err}).Warn("Redis unreachable - response cache will run memory-only")
		_ = rdb.Close()
		return nil
	}
	logger.GetLogger().WithField("addr", addr).Info("Redis connected for response cache L2")
	return rdb
}
