package services

import (
	"context"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"go.uber.org/zap"
)

// approvedListingLimit caps the public homepage listing
const approvedListingLimit = 6

// ApprovedListingCache serves the cached public approved-sessions
// listing. Satisfied by cache.SessionCache.
type ApprovedListingCache interface {
	GetApproved(ctx context.Context) ([]*models.Session, error)
	IsReady() bool
	Invalidate()
}

// SessionService handles the session lifecycle:
// tutor proposes (pending) -> admin approves or rejects -> tutor may
// resubmit a rejected session.
type SessionService struct {
	sessions repository.SessionStore
	cache    ApprovedListingCache
}

// NewSessionService creates a new session service instance
func NewSessionService(sessions repository.SessionStore, cache ApprovedListingCache) *SessionService {
	return &SessionService{
		sessions: sessions,
		cache:    cache,
	}
}

// Create registers a new session proposal with status pending
func (s *SessionService) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.Session, error) {
	session, err := s.sessions.Create(ctx, &models.Session{
		Title:                 req.Title,
		TutorEmail:            req.TutorEmail,
		TutorName:             req.TutorName,
		Description:           req.Description,
		RegistrationStartDate: req.RegistrationStartDate,
		RegistrationEndDate:   req.RegistrationEndDate,
		ClassStartDate:        req.ClassStartDate,
		ClassEndDate:          req.ClassEndDate,
		DurationHours:         req.DurationHours,
	})
	if err != nil {
		logger.Error("Failed to create session",
			zap.String("tutor_email", req.TutorEmail),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Session created",
		zap.String("session_id", session.ID),
		zap.String("tutor_email", session.TutorEmail))

	return session, nil
}

// GetAll returns every session regardless of status
func (s *SessionService) GetAll(ctx context.Context) ([]*models.Session, error) {
	return s.sessions.GetAll(ctx)
}

// GetApproved returns the public homepage listing: approved sessions
// sorted by registration start date, capped, served from cache.
func (s *SessionService) GetApproved(ctx context.Context) ([]*models.Session, error) {
	if s.cache != nil && s.cache.IsReady() {
		return s.cache.GetApproved(ctx)
	}
	return s.sessions.GetApproved(ctx, approvedListingLimit)
}

// GetByID fetches a single session
func (s *SessionService) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.sessions.GetByID(ctx, id)
}

// GetByTutor returns all of a tutor's sessions
func (s *SessionService) GetByTutor(ctx context.Context, email string) ([]*models.Session, error) {
	return s.sessions.GetByTutorEmail(ctx, email)
}

// GetByTutorAndStatus returns a tutor's sessions in one status
func (s *SessionService) GetByTutorAndStatus(ctx context.Context, email, status string) ([]*models.Session, error) {
	return s.sessions.GetByTutorEmailAndStatus(ctx, email, status)
}

// RequestAgain resubmits a rejected session for moderation. Only the
// rejected state is a valid source; anything else leaves the session
// untouched and returns an error.
func (s *SessionService) RequestAgain(ctx context.Context, id, tutorEmail string) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	current, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.TutorEmail != tutorEmail {
		return nil, apperrors.AccessDeniedError("session belongs to another tutor")
	}
	if current.Status != models.SessionStatusRejected {
		return nil, apperrors.InvalidInputError("status", "only rejected sessions can be resubmitted")
	}

	session, err := s.sessions.UpdateStatus(ctx, id, models.SessionStatusRejected, models.SessionStatusPending, map[string]interface{}{
		"rejection_reason":   "",
		"rejection_feedback": "",
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Session resubmitted for moderation",
		zap.String("session_id", id),
		zap.String("tutor_email", tutorEmail))

	return session, nil
}

// Approve moves a pending session to approved, fixing its pricing.
// Free sessions get price forced to zero; paid sessions need a
// positive price.
func (s *SessionService) Approve(ctx context.Context, id string, req *models.ApproveSessionRequest) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	price := req.Price
	if req.SessionType == models.SessionTypeFree {
		price = 0
	} else if price <= 0 {
		return nil, apperrors.InvalidInputError("registrationFee", "paid sessions need a positive fee")
	}

	session, err := s.sessions.UpdateStatus(ctx, id, models.SessionStatusPending, models.SessionStatusApproved, map[string]interface{}{
		"session_type": req.SessionType,
		"price":        price,
	})
	if err != nil {
		metrics.SessionModerations.WithLabelValues("approve_failed").Inc()
		return nil, err
	}

	metrics.SessionModerations.WithLabelValues("approved").Inc()
	logger.Info("Session approved",
		zap.String("session_id", id),
		zap.String("session_type", session.SessionType),
		zap.Float64("price", session.Price))

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return session, nil
}

// Reject moves a pending session to rejected with a mandatory reason
func (s *SessionService) Reject(ctx context.Context, id string, req *models.RejectSessionRequest) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	session, err := s.sessions.UpdateStatus(ctx, id, models.SessionStatusPending, models.SessionStatusRejected, map[string]interface{}{
		"rejection_reason":   req.RejectionReason,
		"rejection_feedback": req.RejectionFeedback,
	})
	if err != nil {
		metrics.SessionModerations.WithLabelValues("reject_failed").Inc()
		return nil, err
	}

	metrics.SessionModerations.WithLabelValues("rejected").Inc()
	logger.Info("Session rejected",
		zap.String("session_id", id),
		zap.String("reason", req.RejectionReason))

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return session, nil
}

// Update applies an admin edit to a session
func (s *SessionService) Update(ctx context.Context, id string, req *models.UpdateSessionRequest) (*models.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	session, err := s.sessions.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return session, nil
}

// Delete removes a session and its dependent materials, bookings and
// reviews in one transaction.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	if err := s.sessions.DeleteCascade(ctx, id); err != nil {
		return err
	}

	logger.Info("Session deleted with dependents", zap.String("session_id", id))

	if s.cache != nil {
		s.cache.Invalidate()
	}

	return nil
}
