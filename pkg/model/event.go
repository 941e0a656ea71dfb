package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType names something that happened to a request or rental
type EventType string

const (
	EventRequestCreated   EventType = "request.created"
	EventRentalCreated    EventType = "rental.created"
	EventCustomerInfo     EventType = "rental.customer_info"
	EventPickupScheduled  EventType = "rental.pickup_scheduled"
	EventDropoffScheduled EventType = "rental.dropoff_scheduled"
	EventMileageOut       EventType = "rental.mileage_out"
	EventMileageIn        EventType = "rental.mileage_in"
	EventSignedContract   EventType = "rental.signed_contract"
)

// Event is one row of the rental event log, also broadcast to admins
type Event struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	FolderID  string            `json:"folder_id,omitempty" db:"folder_id"`
	Type      EventType         `json:"type" db:"type"`
	Summary   string            `json:"summary" db:"summary"`
	Detail    map[string]string `json:"detail,omitempty" db:"detail"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
}

// NewEvent stamps an id and creation time
func NewEvent(folderID string, typ EventType, summary string, detail map[string]string) Event {
	return Event{
		ID:        uuid.New(),
		FolderID:  folderID,
		Type:      typ,
		Summary:   summary,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}
