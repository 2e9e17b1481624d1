package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/services"
)

// StudentDashboardHandler serves the student dashboard views
type StudentDashboardHandler struct {
	service *services.StudentDashboardService
}

// NewStudentDashboardHandler creates a new StudentDashboardHandler
func NewStudentDashboardHandler(service *services.StudentDashboardService) *StudentDashboardHandler {
	return &StudentDashboardHandler{
		service: service,
	}
}

// currentEmail resolves the email the dashboard is scoped to: always
// the authenticated student, never a client-supplied query parameter.
func currentEmail(c *gin.Context) (string, bool) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return "", false
	}
	return current.Email, true
}

// Stats handles GET /student/dashboard-stats
func (h *StudentDashboardHandler) Stats(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	stats, err := h.service.DashboardStats(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// OngoingSessions handles GET /student/ongoing-sessions
func (h *StudentDashboardHandler) OngoingSessions(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	sessions, err := h.service.OngoingSessions(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// UpcomingSessions handles GET /student/upcoming-sessions
func (h *StudentDashboardHandler) UpcomingSessions(c *gin.Context) {
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

// RecentPerformance handles GET /student/recent-performance
func (h *StudentDashboardHandler) RecentPerformance(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	entries, err := h.service.RecentPerformance(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// RecentNotes handles GET /student/recent-notes
func (h *StudentDashboardHandler) RecentNotes(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	notes, err := h.service.RecentNotes(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

// StudyMaterials handles GET /student/study-materials
func (h *StudentDashboardHandler) StudyMaterials(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	materials, err := h.service.StudyMaterials(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}
