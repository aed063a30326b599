package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/shared/auth"
	"resume-booster/internal/shared/server/respond"
	"resume-booster/internal/shared/telemetry"
)

const (
	identityKey = "identity"
	userIDKey   = "userId"
)

// UserResolver maps a verified token subject to an internal user id.
type UserResolver interface {
	ResolveUserID(ctx context.Context, subject string) (userID int64, found bool, err error)
}

// Authenticate verifies the bearer credential and stores the identity in context.
func Authenticate(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		if verifier == nil {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "authentication not configured", nil)
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			telemetry.Warn("auth.verify_failed", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err,
			})
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireUser resolves the authenticated identity to a registered user.
// Must run after Authenticate.
func RequireUser(resolver UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "missing or invalid token", nil)
			return
		}
		userID, found, err := resolver.ResolveUserID(c.Request.Context(), identity.Subject)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to resolve user", nil)
			return
		}
		if !found {
			respond.Error(c, http.StatusUnauthorized, respond.CodeUnauthorized, "user not registered", nil)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// IdentityFromContext fetches the identity set by Authenticate.
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	if c == nil {
		return auth.Identity{}, false
	}
	val, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := val.(auth.Identity)
	return identity, ok
}

// UserIDFromContext fetches the internal user id set by RequireUser, or 0.
func UserIDFromContext(c *gin.Context) int64 {
	if c == nil {
		return 0
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
