package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/pkg/jwt"
)

const (
	// SessionCookieName is the name of the auth cookie
	SessionCookieName = "token"

	// CurrentUserContextKey is the key used to store the resolved user
	CurrentUserContextKey = "current_user"
)

var (
	ErrUserNotInContext = errors.New("user not found in context")
	ErrInvalidUserType  = errors.New("invalid user type in context")
)

// UserResolver looks up accounts by email. Satisfied by
// repository.UserRepository.
type UserResolver interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware validates the JWT session cookie and resolves the
// account behind it. A valid token whose email no longer maps to a user
// is treated the same as no token: 401.
func AuthMiddleware(tokenManager *jwt.TokenManager, users UserResolver, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			_ = c.Error(fmt.Errorf("missing session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			// Clear invalid cookie
			clearSessionCookie(c, cookieDomain, cookieSecure)

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			_ = c.Error(fmt.Errorf("session user not resolvable: %w", err)) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// RequireAdmin rejects non-admin users with 403. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(models.RoleAdmin)
}

// RequireTutor rejects non-tutor users with 403. Must run after
// AuthMiddleware.
func RequireTutor() gin.HandlerFunc {
	return requireRole(models.RoleTutor)
}

// RequireStudent rejects non-student users with 403. Must run after
// AuthMiddleware.
func RequireStudent() gin.HandlerFunc {
	return requireRole(models.RoleStudent)
}

func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetCurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if user.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, error) {
	val, exists := c.Get(CurrentUserContextKey)
	if !exists {
		return nil, ErrUserNotInContext
	}

	user, ok := val.(*models.User)
	if !ok {
		return nil, ErrInvalidUserType
	}

	return user, nil
}

// SetSessionCookie sets the auth cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the auth cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
