// internal/client/redis_client.go
package client

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisAddr = "localhost:6379"

var (
	instance *redis.Client
	once     sync.Once
)

// GetRedis 返回 redis.Client 的单例
// 在第一次被调用时，它会根据环境变量 REDIS_ADDR / REDIS_PASSWORD 初始化客户端
// 后续所有调用都将返回这同一个实例
func GetRedis() *redis.Client {
	once.Do(func() {
		instance = redis.NewClient(Options())
	})
	return instance
}

// Options 从环境变量构造 Redis 连接参数
func Options() *redis.Options {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = defaultRedisAddr
	}
	return &redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// Ping 在启动时检查 Redis 是否可用，超时时间为 5 秒
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("无法连接到 Redis (%s): %w", rdb.Options().Addr, err)
	}
	return nil
}
