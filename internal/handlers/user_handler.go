package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// UserHandler handles account endpoints: registration, role lookups,
// the public tutor directory, and admin user management.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Register handles POST /users
// Registering an existing email returns the stored record unchanged.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	user, created, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message": "User already exists",
			"user":    user,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"user":    user,
	})
}

// Exists handles GET /users/:email
func (h *UserHandler) Exists(c *gin.Context) {
	exists, err := h.service.Exists(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ExistsResponse{Exists: exists})
}

// GetRole handles GET /users/:email/role
// Unknown emails default to the student role.
func (h *UserHandler) GetRole(c *gin.Context) {
	role, err := h.service.GetRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RoleResponse{Role: role})
}

// GetAll handles GET /all-users (admin)
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Search handles GET /search-users?query= (admin)
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateRole handles PATCH /update-user-role/:id (admin)
// An admin cannot remove their own admin role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	// Self-demotion is detected against the authenticated admin, not a
	// client-supplied email.
	if current, err := middleware.GetCurrentUser(c); err == nil {
		req.CurrentUserEmail = current.Email
	}

	user, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetTutors handles GET /all-tutor (public directory)
func (h *UserHandler) GetTutors(c *gin.Context) {
	tutors, err := h.service.GetTutors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutors)
}

// GetTutor handles GET /tutor/:id
func (h *UserHandler) GetTutor(c *gin.Context) {
	tutor, err := h.service.GetTutorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tutor)
}

// GetTutorSessions handles GET /tutor-sessions/:id
// Returns a tutor's approved sessions for the public profile page.
func (h *UserHandler) GetTutorSessions(c *gin.Context) {
	sessions, err := h.service.GetTutorSessions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}
