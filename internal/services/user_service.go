package services

import (
	"context"
	"strings"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"go.uber.org/zap"
)

// UserService handles account registration and administration
type UserService struct {
	users    repository.UserStore
	sessions repository.SessionStore
}

// NewUserService creates a new user service instance
func NewUserService(users repository.UserStore, sessions repository.SessionStore) *UserService {
	return &UserService{
		users:    users,
		sessions: sessions,
	}
}

// Register creates an account for an unseen email. Registering an
// existing email is a no-op: the stored record is returned unchanged
// and created reports false. The unique index on email is the real
// guard; the lookup here only makes the common case cheap.
func (s *UserService) Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		metrics.UserRegistrations.WithLabelValues("duplicate").Inc()
		logger.Info("Registration for existing email, returning stored record",
			zap.String("email", email))
		return existing, false, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		metrics.UserRegistrations.WithLabelValues("error").Inc()
		return nil, false, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:    email,
		Name:     req.Name,
		Role:     role,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		// A concurrent registration hit the unique index first; surface
		// the stored record just like the fast path.
		if apperrors.Is(err, apperrors.ErrConflict) {
			if existing, getErr := s.users.GetByEmail(ctx, email); getErr == nil {
				metrics.UserRegistrations.WithLabelValues("duplicate").Inc()
				return existing, false, nil
			}
		}
		metrics.UserRegistrations.WithLabelValues("error").Inc()
		logger.Error("Failed to register user", zap.String("email", email), zap.Error(err))
		return nil, false, err
	}

	metrics.UserRegistrations.WithLabelValues("success").Inc()
	logger.Info("User registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role))

	return user, true, nil
}

// Exists reports whether an account with the given email exists
func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetRole returns the role for an email, defaulting to student for
// unknown accounts.
func (s *UserService) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return models.RoleStudent, nil
		}
		return "", err
	}
	return user.Role, nil
}

// GetAll returns all accounts
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAll(ctx)
}

// Search finds accounts matching the query on name or email. An empty
// query returns everything.
func (s *UserService) Search(ctx context.Context, query string) ([]*models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.users.GetAll(ctx)
	}
	return s.users.Search(ctx, query)
}

// UpdateRole changes a user's role. An admin cannot remove their own
// admin role; the platform must keep at least the acting admin.
func (s *UserService) UpdateRole(ctx context.Context, id string, req *models.UpdateUserRoleRequest) (*models.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CurrentUserEmail != "" &&
		strings.EqualFold(target.Email, req.CurrentUserEmail) &&
		target.Role == models.RoleAdmin && req.Role != models.RoleAdmin {
		logger.Warn("Admin attempted to remove own admin role",
			zap.String("email", target.Email))
		return nil, apperrors.AccessDeniedError("cannot remove your own admin role")
	}

	updated, err := s.users.UpdateRole(ctx, id, req.Role)
	if err != nil {
		return nil, err
	}

	logger.Info("User role updated",
		zap.String("user_id", id),
		zap.String("from", target.Role),
		zap.String("to", updated.Role))

	return updated, nil
}

// GetTutors returns the public tutor directory
func (s *UserService) GetTutors(ctx context.Context) ([]*models.User, error) {
	return s.users.GetByRole(ctx, models.RoleTutor)
}

// GetTutorByID returns a single tutor profile. Non-tutor accounts are
// not exposed through the directory.
func (s *UserService) GetTutorByID(ctx context.Context, id string) (*models.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleTutor {
		return nil, apperrors.NotFoundError("tutor")
	}

	return user, nil
}

// GetTutorSessions returns a tutor's approved sessions for the public
// profile page.
func (s *UserService) GetTutorSessions(ctx context.Context, id string) ([]*models.Session, error) {
	tutor, err := s.GetTutorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sessions.GetByTutorEmailAndStatus(ctx, tutor.Email, models.SessionStatusApproved)
}
