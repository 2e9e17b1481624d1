package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/services"
)

// TutorDashboardHandler serves the tutor dashboard views
type TutorDashboardHandler struct {
	service *services.TutorStatsService
}

// NewTutorDashboardHandler creates a new TutorDashboardHandler
func NewTutorDashboardHandler(service *services.TutorStatsService) *TutorDashboardHandler {
	return &TutorDashboardHandler{
		service: service,
	}
}

// Stats handles GET /api/tutor/stats
func (h *TutorDashboardHandler) Stats(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// UpcomingSessions handles GET /api/tutor/upcoming-sessions
func (h *TutorDashboardHandler) UpcomingSessions(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	sessions, err := h.service.UpcomingSessions(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RecentStudents handles GET /api/tutor/recent-students?limit=
func (h *TutorDashboardHandler) RecentStudents(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	students, err := h.service.RecentStudents(c.Request.Context(), email, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
