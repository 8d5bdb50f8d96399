package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlashRecovery recovers from handler panics, logs them, and sends the user
// back to the dashboard with a generic error message.
func FlashRecovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		GetLoggerFromCtx(c.Request.Context()).Error("Recovered from panic in handler", slog.Any("panic", recovered))
		AddFlash(c, FlashError, "An internal error occurred")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
	})
}
