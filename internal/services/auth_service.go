package services

import (
	"context"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	"github.com/studyhive/studyhive-api/pkg/jwt"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"go.uber.org/zap"
)

// AuthService issues session tokens for known accounts
type AuthService struct {
	users        repository.UserStore
	tokenManager *jwt.TokenManager
}

// NewAuthService creates a new auth service instance
func NewAuthService(users repository.UserStore, tokenManager *jwt.TokenManager) *AuthService {
	return &AuthService{
		users:        users,
		tokenManager: tokenManager,
	}
}

// IssueToken generates a session token for the account behind email.
// Unknown emails return ErrNotFound; a token is never minted for an
// account that does not exist.
func (s *AuthService) IssueToken(ctx context.Context, email string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		logger.Info("Token requested for unknown email", zap.String("email", email))
		return "", nil, err
	}

	token, err := s.tokenManager.GenerateToken(user.Email, user.Role)
	if err != nil {
		logger.Error("Failed to generate session token",
			zap.String("email", email),
			zap.Error(err))
		return "", nil, err
	}

	logger.Info("Session token issued",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return token, user, nil
}
