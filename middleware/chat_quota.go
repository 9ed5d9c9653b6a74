package middleware

import (
	"context"
	"net/http"
	"time"

	"repairdesk/config"
	"repairdesk/models"
	"repairdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatQuotaMiddleware enforces the per-caller conversational quota with a
// fixed window counter in Redis. The key is the customer ID for signed-in
// callers and the client IP for guests. The quota is consumed before the
// model call so exhausted callers never burn upstream tokens.
//
// Redis trouble fails open: losing quota accounting for a window is better
// than refusing every conversation.
func ChatQuotaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := int64(config.AppConfig.ChatQuotaLimit)
		window := time.Duration(config.AppConfig.ChatQuotaWindowMin) * time.Minute
		if limit <= 0 {
			c.Next()
			return
		}

		key := utils.ChatQuotaPrefix
		if caller := CallerFromContext(c); caller != nil {
			key += caller.CustomerID
		} else {
			key += getClientIP(c)
		}

		quotaCache := utils.GetQuotaCacheClient()
		if quotaCache == nil {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		count, err := quotaCache.Incr(ctx, key).Result()
		if err != nil {
			zap.L().Warn("chat quota counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := quotaCache.Expire(ctx, key, window).Err(); err != nil {
				zap.L().Warn("failed to set quota window", zap.Error(err))
			}
		} else if ttl, terr := quotaCache.TTL(ctx, key).Result(); terr == nil && ttl < 0 {
			// A counter without a TTL would limit the caller forever.
			// The first request's Expire never landed; restart the window.
			if err := quotaCache.Expire(ctx, key, window).Err(); err != nil {
				zap.L().Warn("failed to repair quota window", zap.Error(err))
			}
		}

		if count > limit {
			retryAfter := int(window.Seconds())
			if ttl, err := quotaCache.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ChatResponse{
				Error:      models.ErrCodeRateLimited,
				Message:    "Too many messages. Please wait before trying again.",
				RetryAfter: retryAfter,
			})
			return
		}

		c.Next()
	}
}
