package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// ipLimiter 單一 IP 的記憶體限流狀態
type ipLimiter struct {
	count   int
	resetAt time.Time
}

// RateLimiter 每 IP 限流器，優先用 Redis，沒有 Redis 時退回記憶體計數
type RateLimiter struct {
	requests int
	window   time.Duration
	rdb      *redis.Client

	mu      sync.Mutex
	entries map[string]*ipLimiter
}

// NewRateLimiter 創建限流器；cfg.Redis.Addr 留空時使用記憶體模式
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		common.LogInfo("登入限流使用 Redis",
			zap.String("addr", cfg.Redis.Addr),
		)
	}

	return &RateLimiter{
		requests: cfg.RateLimit.Requests,
		window:   cfg.RateLimit.Window,
		rdb:      rdb,
		entries:  make(map[string]*ipLimiter),
	}
}

// Allow 檢查指定 IP 是否允許再次嘗試
func (rl *RateLimiter) Allow(ctx context.Context, ip string) bool {
	if rl.rdb != nil {
		allowed, err := rl.allowRedis(ctx, ip)
		if err == nil {
			return allowed
		}
		// Redis 掛了退回記憶體模式，不讓登入整個死掉
		common.LogWarn("Redis 限流失敗，退回記憶體模式", zap.Error(err))
	}
	return rl.allowMemory(ip)
}

// allowRedis 用 INCR + TTL 實現固定窗口計數
func (rl *RateLimiter) allowRedis(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("ratelimit:login:%s", ip)

	count, err := rl.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(rl.requests), nil
}

// allowMemory 記憶體固定窗口計數
func (rl *RateLimiter) allowMemory(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.entries[ip]
	if !exists || now.After(entry.resetAt) {
		rl.entries[ip] = &ipLimiter{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	entry.count++
	return entry.count <= rl.requests
}

// Close 關閉 Redis 連線
func (rl *RateLimiter) Close() error {
	if rl.rdb != nil {
		return rl.rdb.Close()
	}
	return nil
}

// RateLimit 登入限流中間件
func RateLimit(cfg *config.Config, limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.RateLimit.Enabled {
			c.Next()
			return
		}

		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.RateLimit.Window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many attempts. Try again in a minute.",
				"retry_after": cfg.RateLimit.Window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
