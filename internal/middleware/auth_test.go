package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/studyhive/studyhive-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockUserResolver is a mock implementation of middleware.UserResolver
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuthRouter(tm *jwt.TokenManager, users middleware.UserResolver, gates ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(tm, users, "", false)}, gates...)
	router.GET("/protected", append(chain, func(c *gin.Context) {
		user, err := middleware.GetCurrentUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})...)
	return router
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	router := newAuthRouter(tm, new(MockUserResolver))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	router := newAuthRouter(tm, new(MockUserResolver))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "garbage"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	// Invalid cookie gets cleared
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.SessionCookieName+"=")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	mockUsers := new(MockUserResolver)
	router := newAuthRouter(tm, mockUsers)

	token, err := tm.GenerateToken("tutor@example.com", models.RoleTutor)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "tutor@example.com").
		Return(&models.User{Email: "tutor@example.com", Role: models.RoleTutor}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tutor@example.com")
	mockUsers.AssertExpectations(t)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	mockUsers := new(MockUserResolver)
	router := newAuthRouter(tm, mockUsers)

	token, err := tm.GenerateToken("ghost@example.com", models.RoleStudent)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, apperrors.NotFoundError("user")).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_WrongRole(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	mockUsers := new(MockUserResolver)
	router := newAuthRouter(tm, mockUsers, middleware.RequireAdmin())

	token, err := tm.GenerateToken("student@example.com", models.RoleStudent)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "student@example.com").
		Return(&models.User{Email: "student@example.com", Role: models.RoleStudent}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Forbidden")
}

func TestRequireTutor_MatchingRole(t *testing.T) {
	tm := jwt.NewTokenManager("test-secret", "studyhive-api", 1)
	mockUsers := new(MockUserResolver)
	router := newAuthRouter(tm, mockUsers, middleware.RequireTutor())

	token, err := tm.GenerateToken("tutor@example.com", models.RoleTutor)
	require.NoError(t, err)

	mockUsers.On("GetByEmail", mock.Anything, "tutor@example.com").
		Return(&models.User{Email: "tutor@example.com", Role: models.RoleTutor}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
