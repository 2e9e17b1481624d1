package services

import (
	"context"
	"math"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/repository"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"github.com/studyhive/studyhive-api/pkg/stripe"
	"go.uber.org/zap"
)

// BookingService handles session enrollment. Free sessions book
// directly; paid sessions require a confirmed payment intent, and the
// payment record and booking are written in one transaction so neither
// can exist without the other.
type BookingService struct {
	bookings repository.BookingStore
	sessions repository.SessionStore
	payments PaymentProvider
}

// NewBookingService creates a new booking service instance
func NewBookingService(bookings repository.BookingStore, sessions repository.SessionStore, payments PaymentProvider) *BookingService {
	return &BookingService{
		bookings: bookings,
		sessions: sessions,
		payments: payments,
	}
}

// Create books a session for a student.
// Order of checks: session exists (404) -> not already booked (409) ->
// free path, or paid path with intent id present (400) and intent
// confirmed by the provider (402).
func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookedSession, error) {
	if err := validateID(req.SessionID); err != nil {
		metrics.Bookings.WithLabelValues("invalid").Inc()
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		metrics.Bookings.WithLabelValues("session_not_found").Inc()
		return nil, err
	}

	booked, err := s.bookings.Exists(ctx, req.SessionID, req.StudentEmail)
	if err != nil {
		metrics.Bookings.WithLabelValues("error").Inc()
		return nil, err
	}
	if booked {
		metrics.Bookings.WithLabelValues("duplicate").Inc()
		return nil, apperrors.ConflictError("session already booked")
	}

	booking := &models.BookedSession{
		SessionID:      session.ID,
		StudentEmail:   req.StudentEmail,
		StudentName:    req.StudentName,
		TutorEmail:     session.TutorEmail,
		SessionTitle:   session.Title,
		ClassStartDate: session.ClassStartDate,
		ClassEndDate:   session.ClassEndDate,
		DurationHours:  session.DurationHours,
	}

	if session.IsFree() {
		booking.PaymentStatus = models.PaymentStatusFree

		created, err := s.bookings.Create(ctx, booking)
		if err != nil {
			metrics.Bookings.WithLabelValues("error").Inc()
			return nil, err
		}

		metrics.Bookings.WithLabelValues("free").Inc()
		logger.Info("Free session booked",
			zap.String("session_id", session.ID),
			zap.String("student_email", req.StudentEmail))

		return created, nil
	}

	// Paid path: nothing is written until the provider confirms the charge
	if req.PaymentIntentID == "" {
		metrics.Bookings.WithLabelValues("missing_intent").Inc()
		return nil, apperrors.InvalidInputError("paymentIntentId", "required for paid sessions")
	}

	intent, err := s.payments.RetrievePaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		metrics.Bookings.WithLabelValues("intent_error").Inc()
		logger.Error("Failed to verify payment intent",
			zap.String("intent_id", req.PaymentIntentID),
			zap.Error(err))
		if apperrors.Is(err, stripe.ErrIntentNotFound) {
			return nil, apperrors.InvalidInputError("paymentIntentId", "unknown payment intent")
		}
		return nil, err
	}

	if intent.Status != stripe.StatusSucceeded {
		metrics.Bookings.WithLabelValues("payment_unconfirmed").Inc()
		logger.Warn("Booking attempted with unconfirmed payment",
			zap.String("session_id", session.ID),
			zap.String("intent_id", intent.ID),
			zap.String("intent_status", intent.Status))
		return nil, apperrors.ErrPaymentRequired
	}

	booking.PaymentStatus = models.PaymentStatusPaid
	booking.PaymentIntentID = intent.ID

	payment := &models.Payment{
		SessionID:       session.ID,
		StudentEmail:    req.StudentEmail,
		TutorEmail:      session.TutorEmail,
		Amount:          session.Price,
		PaymentIntentID: intent.ID,
	}

	created, err := s.bookings.CreateWithPayment(ctx, booking, payment)
	if err != nil {
		metrics.Bookings.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.Bookings.WithLabelValues("paid").Inc()
	logger.Info("Paid session booked",
		zap.String("session_id", session.ID),
		zap.String("student_email", req.StudentEmail),
		zap.String("intent_id", intent.ID),
		zap.Float64("amount", session.Price))

	return created, nil
}

// GetByStudent returns a student's bookings
func (s *BookingService) GetByStudent(ctx context.Context, email string) ([]*models.BookedSession, error) {
	if email == "" {
		return nil, apperrors.InvalidInputError("email", "is required")
	}
	return s.bookings.GetByStudentEmail(ctx, email)
}

// GetByID returns a single booking
func (s *BookingService) GetByID(ctx context.Context, id string) (*models.BookedSession, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// Check reports whether a student already booked a session
func (s *BookingService) Check(ctx context.Context, sessionID, email string) (bool, error) {
	if sessionID == "" || email == "" {
		return false, apperrors.InvalidInputError("query", "sessionId and email are required")
	}
	if err := validateID(sessionID); err != nil {
		return false, err
	}
	return s.bookings.Exists(ctx, sessionID, email)
}

// CountBySession counts bookings for a session
func (s *BookingService) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	if err := validateID(sessionID); err != nil {
		return 0, err
	}
	return s.bookings.CountBySessionID(ctx, sessionID)
}

// amountCents converts a decimal price to the smallest currency unit
func amountCents(price float64) int64 {
	return int64(math.Round(price * 100))
}
