package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"furnirent_backend/internal/database"
)

const (
	purchaseMaxAttempts = 5
	purchaseWindow      = 1 * time.Minute
)

// PurchaseRateLimit caps process-purchase calls per user. Each purchase
// renders a PDF and sends two emails, so a stuck client retry loop is
// expensive enough to be worth throttling.
func PurchaseRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		if uid == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "purchase_attempts:" + uid

		attempts, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not block checkout.
			c.Next()
			return
		}
		if attempts == 1 {
			database.Redis.Expire(ctx, key, purchaseWindow)
		}

		if attempts > purchaseMaxAttempts {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many purchase attempts. Please wait a minute",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
