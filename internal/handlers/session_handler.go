package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// SessionHandler handles the tutor-facing and public session endpoints
type SessionHandler struct {
	service *services.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{
		service: service,
	}
}

// Create handles POST /session (tutor)
// New sessions always enter moderation as pending.
func (h *SessionHandler) Create(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	// The proposal is always attributed to the authenticated tutor
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	req.TutorEmail = current.Email
	if req.TutorName == "" {
		req.TutorName = current.Name
	}

	session, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// GetAll handles GET /sessions (public)
func (h *SessionHandler) GetAll(c *gin.Context) {
	sessions, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetApproved handles GET /approved (public)
// The homepage listing: approved sessions ordered by registration start
// date, capped, served from cache.
func (h *SessionHandler) GetApproved(c *gin.Context) {
	sessions, err := h.service.GetApproved(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetByID handles GET /session/:id (public)
func (h *SessionHandler) GetByID(c *gin.Context) {
	session, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// GetMine handles GET /current-user (tutor)
// Lists the authenticated tutor's sessions across all statuses.
func (h *SessionHandler) GetMine(c *gin.Context) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	sessions, err := h.service.GetByTutor(c.Request.Context(), current.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// GetMineApproved handles GET /tutor-approved-sessions (tutor)
func (h *SessionHandler) GetMineApproved(c *gin.Context) {
	h.getMineByStatus(c, models.SessionStatusApproved)
}

// GetMineRejected handles GET /tutor-rejected-sessions (tutor)
func (h *SessionHandler) GetMineRejected(c *gin.Context) {
	h.getMineByStatus(c, models.SessionStatusRejected)
}

func (h *SessionHandler) getMineByStatus(c *gin.Context, status string) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	sessions, err := h.service.GetByTutorAndStatus(c.Request.Context(), current.Email, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RequestAgain handles PATCH /sessions/request-again/:id (tutor)
// Moves a rejected session back to pending; any other state is refused
// and left unchanged.
func (h *SessionHandler) RequestAgain(c *gin.Context) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	session, err := h.service.RequestAgain(c.Request.Context(), c.Param("id"), current.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
