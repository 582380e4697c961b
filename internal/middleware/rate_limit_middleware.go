package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig holds the fixed-window limiter settings.
type RateLimitConfig struct {
	// MaxRequests is the cap per Window.
	MaxRequests int
	// Window is the counting window.
	Window time.Duration
	// KeyPrefix namespaces the Redis keys.
	KeyPrefix string
}

// DefaultIntakeRateLimitConfig limits the public intake endpoints
// (waitlist, contact, newsletter, investment).
func DefaultIntakeRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 10,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:intake",
	}
}

// AnalyticsRateLimitConfig is looser: tracking calls arrive per page view.
func AnalyticsRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 120,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:analytics",
	}
}

// RateLimiter is a Redis fixed-window limiter keyed by client IP + route.
type RateLimiter struct {
	redisClient redis.UniversalClient
	log         *logrus.Logger
}

// NewRateLimiter creates a RateLimiter. A nil client disables limiting.
func NewRateLimiter(redisClient redis.UniversalClient, log *logrus.Logger) *RateLimiter {
	return &RateLimiter{redisClient: redisClient, log: log}
}

// Limit returns a gin middleware enforcing cfg. Redis errors fail open:
// a broken limiter must not take the intake endpoints down with it.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redisClient == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		key := fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, clientIP, path)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			rl.log.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		// First hit in the window sets the TTL.
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				rl.log.WithError(err).WithField("key", key).Warn("failed to set rate limit TTL")
			}
		}

		if count > int64(cfg.MaxRequests) {
			retryAfter := int(cfg.Window.Seconds())
			if ttl, err := rl.redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":   false,
				"message":   "Too many requests. Please try again later.",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}

		c.Next()
	}
}
