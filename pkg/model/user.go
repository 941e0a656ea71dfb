package model

import "time"

// Admin is the single operator account configured for the business
type Admin struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserRole constants
const (
	RoleAdmin = "admin"
)

// LoginRequest represents the request payload for admin login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response after successful login
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Admin       Admin     `json:"admin"`
}
