package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

const testBookingSessionID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

// MockBookingStore is a mock implementation of repository.BookingStore
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, booking *models.BookedSession) (*models.BookedSession, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookedSession), args.Error(1)
}

func (m *MockBookingStore) CreateWithPayment(ctx context.Context, booking *models.BookedSession, payment *models.Payment) (*models.BookedSession, error) {
	args := m.Called(ctx, booking, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookedSession), args.Error(1)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id string) (*models.BookedSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookedSession), args.Error(1)
}

func (m *MockBookingStore) GetByStudentEmail(ctx context.Context, email string) ([]*models.BookedSession, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookedSession), args.Error(1)
}

func (m *MockBookingStore) GetByTutorEmail(ctx context.Context, email string) ([]*models.BookedSession, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookedSession), args.Error(1)
}

func (m *MockBookingStore) Exists(ctx context.Context, sessionID, studentEmail string) (bool, error) {
	args := m.Called(ctx, sessionID, studentEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingStore) CountBySessionID(ctx context.Context, sessionID string) (int64, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionStore is a mock implementation of repository.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetByID(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetAll(ctx context.Context) ([]*models.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetApproved(ctx context.Context, limit int) ([]*models.Session, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetByTutorEmail(ctx context.Context, email string) ([]*models.Session, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) GetByTutorEmailAndStatus(ctx context.Context, email, status string) ([]*models.Session, error) {
	args := m.Called(ctx, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Session), args.Error(1)
}

func (m *MockSessionStore) UpdateStatus(ctx context.Context, id, fromStatus, toStatus string, fields map[string]interface{}) (*models.Session, error) {
	args := m.Called(ctx, id, fromStatus, toStatus, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) Update(ctx context.Context, id string, req *models.UpdateSessionRequest) (*models.Session, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) DeleteCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func bookingRouter(bookings *MockBookingStore, sessions *MockSessionStore, user *models.User) *gin.Engine {
	handler := NewBookingHandler(services.NewBookingService(bookings, sessions, nil))
	router := gin.New()
	router.POST("/booked-sessions", setCurrentUser(user), handler.Create)
	router.GET("/booked-sessions", setCurrentUser(user), handler.List)
	return router
}

func TestBookingHandler_Create_UsesAuthenticatedEmail(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	router := bookingRouter(mockBookings, mockSessions, &models.User{
		Email: "student@example.com",
		Name:  "Student One",
		Role:  models.RoleStudent,
	})

	mockSessions.On("GetByID", mock.Anything, testBookingSessionID).
		Return(&models.Session{
			ID:          testBookingSessionID,
			Title:       "Algebra basics",
			TutorEmail:  "tutor@example.com",
			SessionType: models.SessionTypeFree,
		}, nil).Once()
	mockBookings.On("Exists", mock.Anything, testBookingSessionID, "student@example.com").
		Return(false, nil).Once()
	mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *models.BookedSession) bool {
		return b.StudentEmail == "student@example.com" && b.PaymentStatus == models.PaymentStatusFree
	})).Return(&models.BookedSession{
		ID:            "b1",
		SessionID:     testBookingSessionID,
		StudentEmail:  "student@example.com",
		PaymentStatus: models.PaymentStatusFree,
	}, nil).Once()

	// No studentEmail in the body: the account on the session cookie books
	body := `{"sessionId":"` + testBookingSessionID + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/booked-sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockBookings.AssertExpectations(t)
	mockSessions.AssertExpectations(t)
}

func TestBookingHandler_Create_BodyEmailIgnored(t *testing.T) {
	mockBookings := new(MockBookingStore)
	mockSessions := new(MockSessionStore)
	router := bookingRouter(mockBookings, mockSessions, &models.User{
		Email: "student@example.com",
		Role:  models.RoleStudent,
	})

	mockSessions.On("GetByID", mock.Anything, testBookingSessionID).
		Return(&models.Session{ID: testBookingSessionID, SessionType: models.SessionTypeFree}, nil).Once()
	mockBookings.On("Exists", mock.Anything, testBookingSessionID, "student@example.com").
		Return(false, nil).Once()
	mockBookings.On("Create", mock.Anything, mock.MatchedBy(func(b *models.BookedSession) bool {
		return b.StudentEmail == "student@example.com"
	})).Return(&models.BookedSession{ID: "b1", StudentEmail: "student@example.com"}, nil).Once()

	body := `{"sessionId":"` + testBookingSessionID + `","studentEmail":"victim@example.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/booked-sessions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockBookings.AssertExpectations(t)
}

func TestBookingHandler_List_ScopedToCurrentUser(t *testing.T) {
	mockBookings := new(MockBookingStore)
	router := bookingRouter(mockBookings, new(MockSessionStore), &models.User{
		Email: "student@example.com",
		Role:  models.RoleStudent,
	})

	mockBookings.On("GetByStudentEmail", mock.Anything, "student@example.com").
		Return([]*models.BookedSession{{ID: "b1", StudentEmail: "student@example.com"}}, nil).Once()

	// A non-admin naming another student still gets their own bookings
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/booked-sessions?email=other@example.com", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "other@example.com")
	mockBookings.AssertExpectations(t)
}

func TestBookingHandler_List_AdminEmailFilter(t *testing.T) {
	mockBookings := new(MockBookingStore)
	router := bookingRouter(mockBookings, new(MockSessionStore), &models.User{
		Email: "admin@example.com",
		Role:  models.RoleAdmin,
	})

	mockBookings.On("GetByStudentEmail", mock.Anything, "student@example.com").
		Return([]*models.BookedSession{{ID: "b1", StudentEmail: "student@example.com"}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/booked-sessions?email=student@example.com", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockBookings.AssertExpectations(t)
}
