package rental

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"car-rental/pkg/model"

	"github.com/lib/pq"
)

var (
	ErrNotFound      = errors.New("rental not found")
	ErrAlreadyExists = errors.New("rental already exists")
)

// Repository defines the rental repository interface
type Repository interface {
	CreateRental(ctx context.Context, rental *model.Rental) error
	GetRental(ctx context.Context, folderID string) (*model.Rental, error)
	ListRentals(ctx context.Context, limit, offset int) ([]model.Rental, int, error)
	// UpdateStatus is a no-op for folders without a record, links minted
	// before a record existed still carry everything the workflow needs
	UpdateStatus(ctx context.Context, folderID string, status model.RentalStatus) error
	UpdateCustomerName(ctx context.Context, folderID, name string) error

	// SaveDocument replaces the folder's document of the same kind
	SaveDocument(ctx context.Context, doc *model.Document) error
	GetDocuments(ctx context.Context, folderID string) ([]model.Document, error)

	AppendEvent(ctx context.Context, event *model.Event) error
	ListEvents(ctx context.Context, folderID string) ([]model.Event, error)
}

// repository implements the rental repository on Postgres
type repository struct {
	db *sql.DB
}

// NewRepository creates a new rental repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

const rentalColumns = `folder_id, vin, make, model, color, license_plate, customer_name, customer_email,
		cost_per_day, start_date, end_date, status, created_at, updated_at`

// CreateRental inserts a new rental record
func (r *repository) CreateRental(ctx context.Context, rental *model.Rental) error {
	query := `
		INSERT INTO rentals (` + rentalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		rental.FolderID, rental.VIN, rental.Make, rental.Model, rental.Color, rental.LicensePlate,
		rental.CustomerName, rental.CustomerEmail, rental.CostPerDay, rental.StartDate, rental.EndDate,
		rental.Status, rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create rental: %w", err)
	}

	return nil
}

func scanRental(row interface{ Scan(...any) error }) (*model.Rental, error) {
	var rental model.Rental
	err := row.Scan(
		&rental.FolderID, &rental.VIN, &rental.Make, &rental.Model, &rental.Color, &rental.LicensePlate,
		&rental.CustomerName, &rental.CustomerEmail, &rental.CostPerDay, &rental.StartDate, &rental.EndDate,
		&rental.Status, &rental.CreatedAt, &rental.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// GetRental retrieves a rental by folder id
func (r *repository) GetRental(ctx context.Context, folderID string) (*model.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE folder_id = $1`

	rental, err := scanRental(r.db.QueryRowContext(ctx, query, folderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get rental: %w", err)
	}

	return rental, nil
}

// ListRentals returns rentals newest first
func (r *repository) ListRentals(ctx context.Context, limit, offset int) ([]model.Rental, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rentals`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rentals: %w", err)
	}

	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rentals: %w", err)
	}
	defer rows.Close()

	rentals := make([]model.Rental, 0)
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan rental: %w", err)
		}
		rentals = append(rentals, *rental)
	}

	return rentals, total, rows.Err()
}

// UpdateStatus moves a rental to status
func (r *repository) UpdateStatus(ctx context.Context, folderID string, status model.RentalStatus) error {
	query := `UPDATE rentals SET status = $2, updated_at = $3 WHERE folder_id = $1`

	_, err := r.db.ExecContext(ctx, query, folderID, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update rental status: %w", err)
	}
	return nil
}

// UpdateCustomerName stores the renter name from the customer packet
func (r *repository) UpdateCustomerName(ctx context.Context, folderID, name string) error {
	query := `UPDATE rentals SET customer_name = $2, updated_at = $3 WHERE folder_id = $1`

	_, err := r.db.ExecContext(ctx, query, folderID, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update customer name: %w", err)
	}
	return nil
}

// SaveDocument upserts a folder document
func (r *repository) SaveDocument(ctx context.Context, doc *model.Document) error {
	query := `
		INSERT INTO rental_documents (folder_id, kind, data, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (folder_id, kind) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query, doc.FolderID, doc.Kind, []byte(doc.Data), doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save %s document: %w", doc.Kind, err)
	}
	return nil
}

// GetDocuments returns every document of a folder
func (r *repository) GetDocuments(ctx context.Context, folderID string) ([]model.Document, error) {
	query := `SELECT folder_id, kind, data, updated_at FROM rental_documents WHERE folder_id = $1 ORDER BY updated_at`

	rows, err := r.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var (
			doc  model.Document
			data []byte
		)
		if err := rows.Scan(&doc.FolderID, &doc.Kind, &data, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Data = json.RawMessage(data)
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// AppendEvent adds a row to the event log
func (r *repository) AppendEvent(ctx context.Context, event *model.Event) error {
	detail, err := json.Marshal(event.Detail)
	if err != nil {
		return fmt.Errorf("failed to marshal event detail: %w", err)
	}
	if event.Detail == nil {
		detail = []byte("{}")
	}

	query := `
		INSERT INTO rental_events (id, folder_id, type, summary, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query, event.ID, event.FolderID, event.Type, event.Summary, detail, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ListEvents returns the event log of a folder, oldest first
func (r *repository) ListEvents(ctx context.Context, folderID string) ([]model.Event, error) {
	query := `SELECT id, folder_id, type, summary, detail, created_at FROM rental_events WHERE folder_id = $1 ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		var (
			event  model.Event
			detail []byte
		)
		if err := rows.Scan(&event.ID, &event.FolderID, &event.Type, &event.Summary, &detail, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &event.Detail); err != nil {
				return nil, fmt.Errorf("failed to unmarshal event detail: %w", err)
			}
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
