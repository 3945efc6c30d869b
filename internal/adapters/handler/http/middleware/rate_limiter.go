package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kanso-habits/internal/platform/metrics"
)

const defaultRateLimitPrefix = "kanso:rate_limit"

// RateLimit configures RateLimiterMiddleware. Requests are counted in fixed
// windows under "<Prefix>:<client>", where the client is the signed-in user
// when the auth middleware already ran and the client IP otherwise.
type RateLimit struct {
	Limit  int
	Window time.Duration
	Prefix string
}

func (rl RateLimit) Enabled() bool {
	return rl.Limit > 0 && rl.Window > 0
}

func (rl RateLimit) key(c *gin.Context) string {
	prefix := rl.Prefix
	if prefix == "" {
		prefix = defaultRateLimitPrefix
	}
	if userID := c.GetString(ContextUserIDKey); userID != "" {
		return prefix + ":user:" + userID
	}
	return prefix + ":ip:" + c.ClientIP()
}

// RateLimiterMiddleware rejects a client's requests past rl.Limit within
// rl.Window with 429. Redis failures let the request through.
func RateLimiterMiddleware(rdb *redis.Client, rl RateLimit) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := rl.key(c)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter skipped, redis unavailable")
			c.Next()
			return
		}

		if count == 1 {
			if err := rdb.Expire(ctx, key, rl.Window).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter expire failed, dropping key")
				rdb.Del(ctx, key)
				c.Next()
				return
			}
		}

		ttl, err := rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = rl.Window
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(rl.Limit)-count), 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(rl.Limit) {
			metrics.RateLimitedTotal.Inc()
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "too many requests",
				"retry_in_s": int(ttl.Seconds()),
			})
			return
		}

		c.Next()
	}
}
