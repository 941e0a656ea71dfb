package model

import (
	"encoding/json"
	"time"
)

// RentalStatus tracks how far a rental has moved through the workflow.
type RentalStatus string

const (
	RentalStatusDraft            RentalStatus = "draft"
	RentalStatusInfoReceived     RentalStatus = "info_received"
	RentalStatusPickupScheduled  RentalStatus = "pickup_scheduled"
	RentalStatusDropoffScheduled RentalStatus = "dropoff_scheduled"
	RentalStatusOut              RentalStatus = "out"
	RentalStatusReturned         RentalStatus = "returned"
)

// Rental is the record behind one rental folder. Links carry a copy of the
// vehicle and date fields, the record is what admins browse.
type Rental struct {
	FolderID      string       `json:"folder_id" db:"folder_id"`
	VIN           string       `json:"vin" db:"vin"`
	Make          string       `json:"make" db:"make"`
	Model         string       `json:"model" db:"model"`
	Color         string       `json:"color" db:"color"`
	LicensePlate  string       `json:"license_plate" db:"license_plate"`
	CustomerName  string       `json:"customer_name" db:"customer_name"`
	CustomerEmail string       `json:"customer_email" db:"customer_email"`
	CostPerDay    string       `json:"cost_per_day" db:"cost_per_day"`
	StartDate     string       `json:"start_date" db:"start_date"`
	EndDate       string       `json:"end_date" db:"end_date"`
	Status        RentalStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// CreateRentalRequest represents the admin's draft rental form
type CreateRentalRequest struct {
	VIN           string `json:"vin" binding:"required,len=17"`
	Make          string `json:"make" binding:"required"`
	Model         string `json:"model" binding:"required"`
	Color         string `json:"color"`
	LicensePlate  string `json:"license_plate"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CostPerDay    string `json:"cost_per_day" binding:"required"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// CreateRentalResponse is returned once the draft link has been minted
type CreateRentalResponse struct {
	Rental           Rental `json:"rental"`
	CustomerInfoLink string `json:"customer_info_link"`
	Message          string `json:"message"`
}

// RentalListResponse represents a paginated list of rentals
type RentalListResponse struct {
	Rentals    []Rental `json:"rentals"`
	TotalCount int      `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// DocumentKind names a JSON document kept in a rental folder.
type DocumentKind string

const (
	DocumentCustomerPacket      DocumentKind = "customer_packet"
	DocumentPickupInstructions  DocumentKind = "pickup_instructions"
	DocumentDropoffInstructions DocumentKind = "dropoff_instructions"
	DocumentMileageOut          DocumentKind = "mileage_out"
	DocumentMileageIn           DocumentKind = "mileage_in"
	DocumentSignedContract      DocumentKind = "signed_contract"
)

// Document is one JSON document of a rental folder. A kind holds a single
// document per folder; saving it again replaces the previous one.
type Document struct {
	FolderID  string          `json:"folder_id" db:"folder_id"`
	Kind      DocumentKind    `json:"kind" db:"kind"`
	Data      json.RawMessage `json:"data" db:"data"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// FileRef points at a file stored in a rental folder
type FileRef struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	URL         string    `json:"url,omitempty"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RentalDetail is everything an admin sees for one folder
type RentalDetail struct {
	Rental    Rental     `json:"rental"`
	Documents []Document `json:"documents"`
	Files     []FileRef  `json:"files"`
	Events    []Event    `json:"events"`
}
