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

// ReviewService handles session reviews, one per (session, student)
type ReviewService struct {
	reviews  repository.ReviewStore
	sessions repository.SessionStore
}

// NewReviewService creates a new review service instance
func NewReviewService(reviews repository.ReviewStore, sessions repository.SessionStore) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		sessions: sessions,
	}
}

// Create submits a review. The existence check is an early exit for a
// friendlier response; the unique index catches races.
func (s *ReviewService) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error) {
	if err := validateID(req.SessionID); err != nil {
		metrics.ReviewSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if _, err := s.sessions.GetByID(ctx, req.SessionID); err != nil {
		metrics.ReviewSubmissions.WithLabelValues("session_not_found").Inc()
		return nil, err
	}

	exists, err := s.reviews.Exists(ctx, req.SessionID, req.StudentEmail)
	if err != nil {
		metrics.ReviewSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}
	if exists {
		metrics.ReviewSubmissions.WithLabelValues("duplicate").Inc()
		return nil, apperrors.ConflictError("review already exists for this session")
	}

	review, err := s.reviews.Create(ctx, &models.Review{
		SessionID:    req.SessionID,
		StudentEmail: req.StudentEmail,
		Rating:       req.Rating,
		Feedback:     req.Feedback,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			metrics.ReviewSubmissions.WithLabelValues("duplicate").Inc()
		} else {
			metrics.ReviewSubmissions.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.ReviewSubmissions.WithLabelValues("success").Inc()
	logger.Info("Review submitted",
		zap.String("review_id", review.ID),
		zap.String("session_id", review.SessionID),
		zap.Float64("rating", review.Rating))

	return review, nil
}

// GetBySession returns a session's reviews
func (s *ReviewService) GetBySession(ctx context.Context, sessionID string) ([]*models.Review, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInputError("sessionId", "is required")
	}
	if err := validateID(sessionID); err != nil {
		return nil, err
	}
	return s.reviews.GetBySessionID(ctx, sessionID)
}

// Update edits a review. Only the author may edit; any other caller
// gets access denied regardless of role.
func (s *ReviewService) Update(ctx context.Context, id, studentEmail string, req *models.UpdateReviewRequest) (*models.Review, error) {
	if err := s.requireAuthor(ctx, id, studentEmail); err != nil {
		return nil, err
	}
	return s.reviews.Update(ctx, id, req)
}

// Delete removes a review. Only the author may delete.
func (s *ReviewService) Delete(ctx context.Context, id, studentEmail string) error {
	if err := s.requireAuthor(ctx, id, studentEmail); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

func (s *ReviewService) requireAuthor(ctx context.Context, id, studentEmail string) error {
	if err := validateID(id); err != nil {
		return err
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(review.StudentEmail, studentEmail) {
		return apperrors.AccessDeniedError("review belongs to another student")
	}

	return nil
}

// GradeForRating maps a numeric rating onto the letter-grade ladder
// used by the performance dashboards.
func GradeForRating(rating float64) string {
	switch {
	case rating >= 5:
		return "A+"
	case rating >= 4.5:
		return "A"
	case rating >= 4:
		return "A-"
	case rating >= 3.5:
		return "B+"
	case rating >= 3:
		return "B"
	case rating >= 2.5:
		return "B-"
	case rating >= 2:
		return "C+"
	default:
		return "C"
	}
}
