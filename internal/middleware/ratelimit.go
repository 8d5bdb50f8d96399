package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit creates a Gin middleware that rate limits mutation requests by
// client IP. Because the protected routes are browser form posts, a tripped
// limit flashes a message and redirects back instead of returning JSON.
func RateLimit(limiterInstance *limiter.Limiter, redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			AddFlash(c, FlashError, "An internal error occurred")
			c.Redirect(http.StatusSeeOther, redirectTo)
			c.Abort()
			return
		}

		if context.Reached {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit), slog.Int64("remaining_requests", context.Remaining))
			AddFlash(c, FlashError, "Too many requests. Please try again later.")
			c.Redirect(http.StatusSeeOther, redirectTo)
			c.Abort()
			return
		}

		c.Next()
	}
}
