package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// BookingHandler handles session enrollment endpoints
type BookingHandler struct {
	service *services.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{
		service: service,
	}
}

// Create handles POST /booked-sessions (student)
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	// Bookings are always made for the authenticated student
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	req.StudentEmail = current.Email
	if req.StudentName == "" {
		req.StudentName = current.Name
	}

	booking, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// List handles GET /booked-sessions?email= (auth). The email filter is
// honored for admins only; everyone else gets their own bookings.
func (h *BookingHandler) List(c *gin.Context) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	email := current.Email
	if q := c.Query("email"); q != "" && current.Role == models.RoleAdmin {
		email = q
	}

	bookings, err := h.service.GetByStudent(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Check handles GET /booked-sessions/check?sessionId=&email=
func (h *BookingHandler) Check(c *gin.Context) {
	booked, err := h.service.Check(c.Request.Context(), c.Query("sessionId"), c.Query("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookingCheckResponse{Booked: booked})
}

// GetByID handles GET /booked-sessions/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CountBySession handles GET /api/session/:sessionId/bookings-count (public)
func (h *BookingHandler) CountBySession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	count, err := h.service.CountBySession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BookingsCountResponse{
		SessionID: sessionID,
		Count:     count,
	})
}
