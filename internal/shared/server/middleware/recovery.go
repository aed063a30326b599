package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/server/respond"
	"resume-booster/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 internal_error and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				fields := map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      rec,
					"stack":      string(debug.Stack()),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
				}
				if userID, ok := c.Get(userIDKey); ok {
					fields["user_id"] = userID
				}
				telemetry.Error("http.panic", fields)
				respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "unexpected server error", nil)
			}
		}()
		c.Next()
	}
}
