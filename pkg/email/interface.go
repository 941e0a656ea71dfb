package email

import (
	"context"
)

// Provider defines the interface for email providers
type Provider interface {
	// SendEmail sends an email with the specified content
	SendEmail(ctx context.Context, to []string, subject string, body EmailBody) error

	// SendTemplateEmail sends an email using a template
	SendTemplateEmail(ctx context.Context, to []string, templateName string, data interface{}, attachments ...Attachment) error

	// ValidateProvider validates the provider configuration
	ValidateProvider(ctx context.Context) error
}

// EmailBody represents the email content
type EmailBody struct {
	HTML        string // HTML content
	Text        string // Plain text content
	Attachments []Attachment
}

// Attachment is a file sent along with an email
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// TemplateData represents common template data for emails
type TemplateData struct {
	RecipientName string
	AppName       string
	AppURL        string
}

// RentalTemplateData describes the rental an email is about
type RentalTemplateData struct {
	TemplateData
	FolderID   string
	Vehicle    string
	VIN        string
	StartDate  string
	EndDate    string
	CostPerDay string
}

// RequestReceivedData is sent to the admin for a new request form entry
type RequestReceivedData struct {
	TemplateData
	Name      string
	Email     string
	Phone     string
	Vehicle   string
	StartDate string
	EndDate   string
	Message   string
}

// LinkTemplateData carries a single capability link
type LinkTemplateData struct {
	RentalTemplateData
	LinkURL   string
	ExpiresAt string
}

// AdminLinksData carries the pickup and dropoff instruction links
type AdminLinksData struct {
	RentalTemplateData
	CustomerName string
	PickupURL    string
	DropoffURL   string
	ExpiresAt    string
}

// InstructionsData is sent to the renter with pickup or dropoff directions
type InstructionsData struct {
	LinkTemplateData
	Address      string
	Time         string
	Instructions string
	ContactPhone string
}

// AdminNotificationData tells the admin a workflow step completed
type AdminNotificationData struct {
	RentalTemplateData
	Title   string
	Details map[string]string
}
