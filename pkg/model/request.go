package model

import (
	"time"

	"github.com/google/uuid"
)

// RentalRequest is an inquiry left through the public request form
type RentalRequest struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Vehicle   string    `json:"vehicle" db:"vehicle"` // preferred vehicle, free text
	StartDate string    `json:"start_date" db:"start_date"`
	EndDate   string    `json:"end_date" db:"end_date"`
	Message   string    `json:"message" db:"message"`
	ClientIP  string    `json:"-" db:"client_ip"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateRentalRequestRequest represents the public request form body
type CreateRentalRequestRequest struct {
	Name      string `json:"name" binding:"required,max=200"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required,max=40"`
	Vehicle   string `json:"vehicle" binding:"max=200"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Message   string `json:"message" binding:"max=4000"`
}

// RentalRequestListResponse represents a paginated list of requests
type RentalRequestListResponse struct {
	Requests   []RentalRequest `json:"requests"`
	TotalCount int             `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}
