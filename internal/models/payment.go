package models

import "time"

// PaymentStatusCompleted is the only status written today; a row is
// inserted only after the payment provider confirms the intent.
const PaymentStatusCompleted = "completed"

// Payment records a confirmed charge for a paid booking.
type Payment struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"sessionId"`
	StudentEmail    string    `json:"studentEmail"`
	TutorEmail      string    `json:"tutorEmail"`
	Amount          float64   `json:"amount"`
	PaymentIntentID string    `json:"paymentIntentId"`
	Status          string    `json:"status"`
	PaymentDate     time.Time `json:"paymentDate"`
}

// CreatePaymentIntentRequest is the body of POST /stripe/create-payment-intent
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gte=1"`
}

// CreatePaymentIntentResponse returns the client secret the frontend
// needs to confirm the card payment.
type CreatePaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
