package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-api/internal/middleware"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/internal/services"
)

// MaterialHandler handles study material endpoints
type MaterialHandler struct {
	service *services.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(service *services.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		service: service,
	}
}

// Create handles POST /materials (tutor)
func (h *MaterialHandler) Create(c *gin.Context) {
	var req models.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	material, err := h.service.Create(c.Request.Context(), current.Email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// List handles GET /materials?sessionId=&email= (auth)
// At least one filter is required.
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.service.List(c.Request.Context(), c.Query("sessionId"), c.Query("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

// Update handles PATCH /materials/:id (tutor, owner only)
func (h *MaterialHandler) Update(c *gin.Context) {
	var req models.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	material, err := h.service.Update(c.Request.Context(), c.Param("id"), current.Email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// Delete handles DELETE /materials/:id (tutor, owner only)
func (h *MaterialHandler) Delete(c *gin.Context) {
	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), current.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Material deleted"})
}

// UploadImage handles POST /materials/:id/image (tutor, owner only)
// Accepts a base64 image and stores it in object storage.
func (h *MaterialHandler) UploadImage(c *gin.Context) {
	var req models.UploadMaterialImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	current, err := middleware.GetCurrentUser(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	url, err := h.service.UploadImage(c.Request.Context(), c.Param("id"), current.Email, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
