package services_test

import (
	"context"
	"testing"

	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testSessionID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	testBookingID = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"
)

func TestBookingService_Create_FreeSession(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	session := &models.Session{
		ID:          testSessionID,
		Title:       "Algebra Basics",
		TutorEmail:  "tutor@example.com",
		SessionType: models.SessionTypeFree,
		Status:      models.SessionStatusApproved,
	}

	mockSessions.On("GetByID", ctx, testSessionID).Return(session, nil).Once()
	mockBookings.On("Exists", ctx, testSessionID, "student@example.com").Return(false, nil).Once()
	mockBookings.On("Create", ctx, mock.MatchedBy(func(b *models.BookedSession) bool {
		return b.SessionID == testSessionID && b.PaymentStatus == models.PaymentStatusFree
	})).Return(&models.BookedSession{ID: testBookingID, SessionID: testSessionID, PaymentStatus: models.PaymentStatusFree}, nil).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:    testSessionID,
		StudentEmail: "student@example.com",
		StudentName:  "Student One",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFree, booking.PaymentStatus)
	mockBookings.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
	mockPayments.AssertNotCalled(t, "RetrievePaymentIntent")
}

func TestBookingService_Create_InvalidSessionID(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)

	booking, err := service.Create(context.Background(), &models.CreateBookingRequest{
		SessionID:    "not-a-uuid",
		StudentEmail: "student@example.com",
	})
	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	mockSessions.AssertNotCalled(t, "GetByID")
}

func TestBookingService_Create_SessionNotFound(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	mockSessions.On("GetByID", ctx, testSessionID).Return(nil, apperrors.NotFoundError("session")).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:    testSessionID,
		StudentEmail: "student@example.com",
	})
	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	mockSessions.AssertExpectations(t)
}

func TestBookingService_Create_Duplicate(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	session := &models.Session{ID: testSessionID, SessionType: models.SessionTypeFree}
	mockSessions.On("GetByID", ctx, testSessionID).Return(session, nil).Once()
	mockBookings.On("Exists", ctx, testSessionID, "student@example.com").Return(true, nil).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:    testSessionID,
		StudentEmail: "student@example.com",
	})
	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	mockBookings.AssertNotCalled(t, "Create")
}

func TestBookingService_Create_PaidMissingIntent(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	session := &models.Session{ID: testSessionID, SessionType: models.SessionTypePaid, Price: 49.99}
	mockSessions.On("GetByID", ctx, testSessionID).Return(session, nil).Once()
	mockBookings.On("Exists", ctx, testSessionID, "student@example.com").Return(false, nil).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:    testSessionID,
		StudentEmail: "student@example.com",
	})
	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	mockPayments.AssertNotCalled(t, "RetrievePaymentIntent")
}

func TestBookingService_Create_PaidUnconfirmedIntent(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	session := &models.Session{ID: testSessionID, SessionType: models.SessionTypePaid, Price: 49.99}
	mockSessions.On("GetByID", ctx, testSessionID).Return(session, nil).Once()
	mockBookings.On("Exists", ctx, testSessionID, "student@example.com").Return(false, nil).Once()
	mockPayments.On("RetrievePaymentIntent", ctx, "pi_123").Return(&stripe.PaymentIntent{
		ID:     "pi_123",
		Status: "requires_payment_method",
	}, nil).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:       testSessionID,
		StudentEmail:    "student@example.com",
		PaymentIntentID: "pi_123",
	})
	assert.Nil(t, booking)
	assert.True(t, apperrors.Is(err, apperrors.ErrPaymentRequired))
	mockBookings.AssertNotCalled(t, "CreateWithPayment")
}

func TestBookingService_Create_PaidConfirmedIntent(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	mockPayments := new(MockPaymentProvider)
	service := services.NewBookingService(mockBookings, mockSessions, mockPayments)
	ctx := context.Background()

	session := &models.Session{
		ID:          testSessionID,
		Title:       "Calculus Prep",
		TutorEmail:  "tutor@example.com",
		SessionType: models.SessionTypePaid,
		Price:       49.99,
	}
	mockSessions.On("GetByID", ctx, testSessionID).Return(session, nil).Once()
	mockBookings.On("Exists", ctx, testSessionID, "student@example.com").Return(false, nil).Once()
	mockPayments.On("RetrievePaymentIntent", ctx, "pi_123").Return(&stripe.PaymentIntent{
		ID:     "pi_123",
		Status: stripe.StatusSucceeded,
		Amount: 4999,
	}, nil).Once()
	mockBookings.On("CreateWithPayment", ctx,
		mock.MatchedBy(func(b *models.BookedSession) bool {
			return b.PaymentStatus == models.PaymentStatusPaid && b.PaymentIntentID == "pi_123"
		}),
		mock.MatchedBy(func(p *models.Payment) bool {
			return p.SessionID == testSessionID && p.PaymentIntentID == "pi_123" && p.Amount == 49.99
		}),
	).Return(&models.BookedSession{ID: testBookingID, PaymentStatus: models.PaymentStatusPaid}, nil).Once()

	booking, err := service.Create(ctx, &models.CreateBookingRequest{
		SessionID:       testSessionID,
		StudentEmail:    "student@example.com",
		PaymentIntentID: "pi_123",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	mockBookings.AssertExpectations(t)
	mockPayments.AssertExpectations(t)
}

func TestBookingService_Check_MissingParams(t *testing.T) {
	service := services.NewBookingService(new(MockBookingStore), new(MockSessionStore), new(MockPaymentProvider))

	_, err := service.Check(context.Background(), "", "student@example.com")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	_, err = service.Check(context.Background(), testSessionID, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestBookingService_CountBySession(t *testing.T) {
	mockBookings := new(MockBookingStore)
	service := services.NewBookingService(mockBookings, new(MockSessionStore), new(MockPaymentProvider))
	ctx := context.Background()

	mockBookings.On("CountBySessionID", ctx, testSessionID).Return(int64(7), nil).Once()

	count, err := service.CountBySession(ctx, testSessionID)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	mockBookings.AssertExpectations(t)
}
