package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/studyhive/studyhive-api/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apperrors.NotFoundError("session"),
			wantStatus: http.StatusNotFound,
			wantBody:   "session not found",
		},
		{
			name:       "invalid input",
			err:        apperrors.InvalidInputError("id", "must be a valid uuid"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Unauthorized",
		},
		{
			name:       "access denied",
			err:        apperrors.AccessDeniedError("review belongs to another student"),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "conflict",
			err:        apperrors.ConflictError("session already booked"),
			wantStatus: http.StatusConflict,
		},
		{
			name:       "payment required",
			err:        apperrors.ErrPaymentRequired,
			wantStatus: http.StatusPaymentRequired,
			wantBody:   "Payment has not been confirmed",
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pq: relation does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Contains(t, w.Body.String(), tt.wantBody)
			}
		})
	}
}
