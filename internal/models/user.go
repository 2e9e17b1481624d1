package models

import "time"

// User roles
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// User represents a registered account. Role defaults to student.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTutor returns true if the user has the tutor role
func (u *User) IsTutor() bool {
	return u.Role == RoleTutor
}

// IsStudent returns true if the user has the student role
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

// RegisterUserRequest is the body of POST /users
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Role     string `json:"role" binding:"omitempty,oneof=student tutor admin"`
	PhotoURL string `json:"photoURL" binding:"omitempty,url"`
}

// UpdateUserRoleRequest is the body of PATCH /update-user-role/:id
type UpdateUserRoleRequest struct {
	Role             string `json:"role" binding:"required,oneof=student tutor admin"`
	CurrentUserEmail string `json:"currentUserEmail" binding:"omitempty,email"`
}
