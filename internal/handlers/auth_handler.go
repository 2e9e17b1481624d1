package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/config"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// AuthHandler handles session issuance and logout
type AuthHandler struct {
	service *services.AuthService
	auth    config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *services.AuthService, auth config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		auth:    auth,
	}
}

// IssueToken handles POST /jwt
// Issues a session token for a known email and sets the auth cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req models.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	token, user, err := h.service.IssueToken(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token,
		h.auth.SessionTTLHours*3600,
		h.auth.CookieDomain,
		h.auth.CookieSecure,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /logout
// Clears the auth cookie. Tokens are stateless, so an already-issued
// token stays valid until expiry; logout only removes it from the
// browser.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.auth.CookieDomain, h.auth.CookieSecure)

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out"})
}
