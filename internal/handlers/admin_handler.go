package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// AdminHandler handles the admin moderation and reporting surface
type AdminHandler struct {
	sessions  *services.SessionService
	materials *services.MaterialService
	stats     *services.AdminStatsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(sessions *services.SessionService, materials *services.MaterialService, stats *services.AdminStatsService) *AdminHandler {
	return &AdminHandler{
		sessions:  sessions,
		materials: materials,
		stats:     stats,
	}
}

// GetSessions handles GET /admin/sessions
func (h *AdminHandler) GetSessions(c *gin.Context) {
	sessions, err := h.sessions.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// ApproveSession handles PATCH /admin/sessions/:id/approve
// Only pending sessions can be approved; free sessions get a zero fee.
func (h *AdminHandler) ApproveSession(c *gin.Context) {
	var req models.ApproveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	session, err := h.sessions.Approve(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// RejectSession handles PATCH /admin/sessions/:id/reject
// A non-empty rejection reason is required.
func (h *AdminHandler) RejectSession(c *gin.Context) {
	var req models.RejectSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	session, err := h.sessions.Reject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// UpdateSession handles PATCH /admin/sessions/:id/update
func (h *AdminHandler) UpdateSession(c *gin.Context) {
	var req models.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	session, err := h.sessions.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession handles DELETE /admin/sessions/:id
// Deletes the session and its materials, bookings and reviews in one
// transaction.
func (h *AdminHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Session deleted"})
}

// GetMaterials handles GET /admin/materials
func (h *AdminHandler) GetMaterials(c *gin.Context) {
	materials, err := h.materials.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

// DeleteMaterial handles DELETE /admin/materials/:id
func (h *AdminHandler) DeleteMaterial(c *gin.Context) {
	if err := h.materials.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Material deleted"})
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecentActivities handles GET /admin/recent-activities?limit=
func (h *AdminHandler) GetRecentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	activities, err := h.stats.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}
