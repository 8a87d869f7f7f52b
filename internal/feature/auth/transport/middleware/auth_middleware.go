// Package middleware gates protected routes behind token authentication.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore_backend/internal/feature/auth/domain/entity"
	"bookstore_backend/internal/platform/http/response"
	"bookstore_backend/internal/platform/token"
)

const (
	// CookieName is the session cookie carrying the signed token.
	CookieName = "token"

	// ContextUserKey is the gin context key holding the resolved *entity.User.
	ContextUserKey = "authUser"

	// bearerPrefix is the Authorization header scheme for the fallback path.
	bearerPrefix = "Bearer "
)

// Verifier resolves a signed token to the user it asserts.
// Following Go convention: the interface is defined by the consumer (middleware),
// not the provider (usecase).
type Verifier interface {
	VerifyAndResolve(ctx context.Context, signed string) (*entity.User, error)
}

// AuthRequired returns a gin middleware that authenticates the request.
// The token is read from the session cookie first, then from a bearer
// Authorization header. Every rejection is a uniform 401 with a generic
// message regardless of cause; the specific cause only goes to the logs.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		signed, fromCookie := extractToken(c)
		if signed == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("access denied"))
			return
		}

		user, err := verifier.VerifyAndResolve(c.Request.Context(), signed)
		if err != nil {
			slog.Warn("authentication failed", "error", err, "remote_addr", c.ClientIP())
			// A cookie that failed verification is useless to the client; drop it.
			if fromCookie && errors.Is(err, token.ErrInvalidToken) {
				ClearTokenCookie(c)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("access denied"))
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

// SetTokenCookie attaches the signed token as an http-only, same-site cookie.
func SetTokenCookie(c *gin.Context, signed string, maxAgeSeconds int, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, signed, maxAgeSeconds, "/", "", secure, true)
}

// ClearTokenCookie expires the session cookie.
func ClearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// extractToken returns the signed token and whether it came from the cookie.
// Cookie takes precedence over the Authorization header; which path was tried
// is never revealed to the client.
func extractToken(c *gin.Context) (signed string, fromCookie bool) {
	if v, err := c.Cookie(CookieName); err == nil && v != "" {
		return v, true
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, bearerPrefix) {
		return strings.TrimPrefix(auth, bearerPrefix), false
	}
	return "", false
}
