package models

import "time"

// Review is a student's rating of a session, one per
// (session, student) pair.
type Review struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"sessionId"`
	StudentEmail string    `json:"studentEmail"`
	Rating       float64   `json:"rating"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateReviewRequest is the body of POST /reviews
type CreateReviewRequest struct {
	SessionID    string  `json:"sessionId" binding:"required"`
	StudentEmail string  `json:"studentEmail" binding:"required,email"`
	Rating       float64 `json:"rating" binding:"required,gte=0,lte=5"`
	Feedback     string  `json:"feedback" binding:"omitempty,max=5000"`
}

// UpdateReviewRequest is the body of PATCH /reviews/:id
type UpdateReviewRequest struct {
	Rating   *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Feedback *string  `json:"feedback" binding:"omitempty,max=5000"`
}
