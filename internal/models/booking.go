package models

import "time"

// Booking payment states
const (
	PaymentStatusFree = "free"
	PaymentStatusPaid = "paid"
)

// BookedSession records a student's enrollment in a session. Session
// details are denormalized at booking time so the record stays readable
// even if the session is later edited.
type BookedSession struct {
	ID              string     `json:"id"`
	SessionID       string     `json:"sessionId"`
	StudentEmail    string     `json:"studentEmail"`
	StudentName     string     `json:"studentName"`
	TutorEmail      string     `json:"tutorEmail"`
	SessionTitle    string     `json:"sessionTitle"`
	ClassStartDate  *time.Time `json:"classStartDate"`
	ClassEndDate    *time.Time `json:"classEndDate"`
	DurationHours   float64    `json:"duration"`
	PaymentStatus   string     `json:"paymentStatus"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
	BookingDate     time.Time  `json:"bookingDate"`
}

// CreateBookingRequest is the body of POST /booked-sessions.
// StudentEmail is filled from the authenticated user, never the body.
type CreateBookingRequest struct {
	SessionID       string `json:"sessionId" binding:"required"`
	StudentEmail    string `json:"-"`
	StudentName     string `json:"studentName" binding:"omitempty,max=200"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// BookingCheckResponse is the body of GET /booked-sessions/check
type BookingCheckResponse struct {
	Booked bool `json:"booked"`
}

// BookingsCountResponse is the body of GET /api/session/:sessionId/bookings-count
type BookingsCountResponse struct {
	SessionID string `json:"sessionId"`
	Count     int64  `json:"count"`
}
