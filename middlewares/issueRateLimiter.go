package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const issueLimitWindow = 24 * time.Hour

// RateCounter is the subset of the Redis client the limiter needs.
type RateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// IssueRateLimiter caps how many reports one client may file per day.
// Clients are keyed by IP since reports are anonymous.
func IssueRateLimiter(counter RateCounter, prefix string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// Create individual key for each client
		clientKey := prefix + ":" + c.ClientIP()

		// Increment client's count with TTL
		count, err := counter.Incr(ctx, clientKey).Result()
		if err != nil {
			log.Error().Err(err).Str("key", clientKey).Msg("redis error incrementing count")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// Set TTL only for the first increment (when count = 1)
		if count == 1 {
			if err := counter.Expire(ctx, clientKey, issueLimitWindow).Err(); err != nil {
				log.Error().Err(err).Str("key", clientKey).Msg("redis error setting TTL")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := counter.TTL(ctx, clientKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
