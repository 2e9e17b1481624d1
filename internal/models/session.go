package models

import "time"

// Session moderation states
const (
	SessionStatusPending  = "pending"
	SessionStatusApproved = "approved"
	SessionStatusRejected = "rejected"
)

// Session pricing types
const (
	SessionTypeFree = "free"
	SessionTypePaid = "paid"
)

// Session is a tutoring session proposed by a tutor. It enters the
// public catalog only after an admin approves it.
type Session struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	TutorEmail            string     `json:"tutorEmail"`
	TutorName             string     `json:"tutorName"`
	Description           string     `json:"description"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
	ClassStartDate        *time.Time `json:"classStartDate"`
	ClassEndDate          *time.Time `json:"classEndDate"`
	DurationHours         float64    `json:"duration"`
	SessionType           string     `json:"sessionType"`
	Price                 float64    `json:"registrationFee"`
	Status                string     `json:"status"`
	RejectionReason       string     `json:"rejectionReason,omitempty"`
	RejectionFeedback     string     `json:"rejectionFeedback,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// IsFree returns true for sessions that cost nothing to book
func (s *Session) IsFree() bool {
	return s.SessionType == SessionTypeFree || s.Price <= 0
}

// CreateSessionRequest is the body of POST /session
type CreateSessionRequest struct {
	Title                 string     `json:"title" binding:"required,min=1,max=300"`
	TutorEmail            string     `json:"tutorEmail" binding:"required,email"`
	TutorName             string     `json:"tutorName" binding:"omitempty,max=200"`
	Description           string     `json:"description" binding:"omitempty,max=5000"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
	ClassStartDate        *time.Time `json:"classStartDate"`
	ClassEndDate          *time.Time `json:"classEndDate"`
	DurationHours         float64    `json:"duration" binding:"omitempty,gte=0"`
}

// UpdateSessionRequest is the body of PATCH /admin/sessions/:id/update.
// Pointer fields distinguish "absent" from zero values.
type UpdateSessionRequest struct {
	Title                 *string    `json:"title" binding:"omitempty,min=1,max=300"`
	Description           *string    `json:"description" binding:"omitempty,max=5000"`
	RegistrationStartDate *time.Time `json:"registrationStartDate"`
	RegistrationEndDate   *time.Time `json:"registrationEndDate"`
	ClassStartDate        *time.Time `json:"classStartDate"`
	ClassEndDate          *time.Time `json:"classEndDate"`
	DurationHours         *float64   `json:"duration" binding:"omitempty,gte=0"`
	Price                 *float64   `json:"registrationFee" binding:"omitempty,gte=0"`
	SessionType           *string    `json:"sessionType" binding:"omitempty,oneof=free paid"`
}

// ApproveSessionRequest is the body of PATCH /admin/sessions/:id/approve
type ApproveSessionRequest struct {
	SessionType string  `json:"sessionType" binding:"required,oneof=free paid"`
	Price       float64 `json:"registrationFee" binding:"omitempty,gte=0"`
}

// RejectSessionRequest is the body of PATCH /admin/sessions/:id/reject
type RejectSessionRequest struct {
	RejectionReason   string `json:"rejectionReason" binding:"required,min=1,max=1000"`
	RejectionFeedback string `json:"rejectionFeedback" binding:"omitempty,max=5000"`
}
