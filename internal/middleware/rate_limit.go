package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig configures a sliding-window rate limiter tier
type RateLimitConfig struct {
	Requests  int
	Window    time.Duration
	KeyPrefix string
	Message   string
}

// AuthRateLimit is the tier for login/register endpoints
func AuthRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Requests:  5,
		Window:    15 * time.Minute,
		KeyPrefix: "api:ratelimit:auth:",
		Message:   "Too many authentication attempts, please try again later",
	}
}

// APIRateLimit is the general read tier
func APIRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Requests:  100,
		Window:    15 * time.Minute,
		KeyPrefix: "api:ratelimit:",
		Message:   "Too many requests, please try again later",
	}
}

// CreateBlogRateLimit caps how fast a single client can publish posts
func CreateBlogRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Requests:  10,
		Window:    time.Hour,
		KeyPrefix: "api:ratelimit:blog-create:",
		Message:   "Blog post creation limit reached, please try again later",
	}
}

// rateLimitScript is an atomic Lua script for sliding window rate limiting
var rateLimitScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local window_start = now - window

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, now .. ':' .. math.random(1000000))
    redis.call('EXPIRE', key, math.ceil(window / 1000) + 1)
    return {1, limit - count - 1, 0}
else
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local reset_at = 0
    if #oldest >= 2 then
        reset_at = tonumber(oldest[2]) + window
    end
    return {0, 0, reset_at}
end
`)

// RateLimit returns a gin middleware that rate limits by client IP within
// the configured window. Redis errors fail open.
func RateLimit(redisClient *redis.Client, cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + c.ClientIP()

		now := time.Now().UnixMilli()
		windowMs := cfg.Window.Milliseconds()

		ctx := context.Background()
		result, err := rateLimitScript.Run(ctx, redisClient, []string{key},
			cfg.Requests, windowMs, now,
		).Int64Slice()

		if err != nil {
			// Fail open — allow request if Redis error
			c.Next()
			return
		}

		allowed := result[0] == 1
		remaining := result[1]
		resetAt := result[2]

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			retryAfter := (resetAt - now) / 1000
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", resetAt/1000))
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": cfg.Message},
			})
			return
		}

		c.Next()
	}
}
