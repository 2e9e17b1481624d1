package models

import "time"

// Note is a student's personal study note, keyed by owner email.
type Note struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateNoteRequest is the body of POST /create-notes
type CreateNoteRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Title   string `json:"title" binding:"required,min=1,max=300"`
	Content string `json:"content" binding:"omitempty,max=20000"`
}

// UpdateNoteRequest is the body of PATCH /notes/:id
type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=300"`
	Content *string `json:"content" binding:"omitempty,max=20000"`
}
