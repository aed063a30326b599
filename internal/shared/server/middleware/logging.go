package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/telemetry"
)

// ResumeIDKey is set by handlers that touch a resume so the request log carries it.
const ResumeIDKey = "resumeId"

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if userID, ok := c.Get(userIDKey); ok {
			fields["user_id"] = userID
		}
		if resumeID, ok := c.Get(ResumeIDKey); ok {
			fields["resume_id"] = resumeID
		}
		telemetry.Info("request.complete", fields)
	}
}
