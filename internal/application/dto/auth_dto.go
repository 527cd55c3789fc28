package dto

import "time"

// RegisterRequest input for account creation. There is no password: the
// system authenticates by username lookup only (internal tool, by design).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,max=50"`
}

// LoginRequest input for login: username only.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
}

// UserResponse user output.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse output with the signed JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
