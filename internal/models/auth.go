package models

// IssueTokenRequest is the body of POST /jwt
type IssueTokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// MessageResponse is the generic success envelope
type MessageResponse struct {
	Message string `json:"message"`
}

// RoleResponse is the body of GET /users/:email/role
type RoleResponse struct {
	Role string `json:"role"`
}

// ExistsResponse is the body of GET /users/:email
type ExistsResponse struct {
	Exists bool `json:"exists"`
}
