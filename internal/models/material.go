package models

import "time"

// Material is a study resource a tutor attaches to one of their
// sessions, typically a shared drive link plus an optional cover image.
type Material struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	TutorEmail string    `json:"tutorEmail"`
	Title      string    `json:"title"`
	Link       string    `json:"link"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateMaterialRequest is the body of POST /materials
type CreateMaterialRequest struct {
	SessionID  string `json:"sessionId" binding:"required"`
	TutorEmail string `json:"tutorEmail" binding:"required,email"`
	Title      string `json:"title" binding:"required,min=1,max=300"`
	Link       string `json:"link" binding:"omitempty,url"`
}

// UpdateMaterialRequest is the body of PATCH /materials/:id
type UpdateMaterialRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=300"`
	Link  *string `json:"link" binding:"omitempty,url"`
}

// UploadMaterialImageRequest is the body of POST /materials/:id/image.
// Image is base64, with or without a data URI prefix.
type UploadMaterialImageRequest struct {
	Image       string `json:"image" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}
