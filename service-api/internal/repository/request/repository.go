package request

import (
	"context"
	"database/sql"
	"fmt"

	"car-rental/pkg/model"
)

// Repository defines the rental request repository interface
type Repository interface {
	Create(ctx context.Context, req *model.RentalRequest) error
	List(ctx context.Context, limit, offset int) ([]model.RentalRequest, int, error)
}

// repository implements the rental request repository
type repository struct {
	db *sql.DB
}

// NewRepository creates a new rental request repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// Create stores a submitted request form
func (r *repository) Create(ctx context.Context, req *model.RentalRequest) error {
	query := `
		INSERT INTO rental_requests (id, name, email, phone, vehicle, start_date, end_date, message, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Name, req.Email, req.Phone, req.Vehicle,
		req.StartDate, req.EndDate, req.Message, req.ClientIP, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create rental request: %w", err)
	}

	return nil
}

// List returns requests newest first together with the total count
func (r *repository) List(ctx context.Context, limit, offset int) ([]model.RentalRequest, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rental_requests`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rental requests: %w", err)
	}

	query := `
		SELECT id, name, email, phone, vehicle, start_date, end_date, message, client_ip, created_at
		FROM rental_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rental requests: %w", err)
	}
	defer rows.Close()

	requests := make([]model.RentalRequest, 0)
	for rows.Next() {
		var req model.RentalRequest
		err := rows.Scan(
			&req.ID, &req.Name, &req.Email, &req.Phone, &req.Vehicle,
			&req.StartDate, &req.EndDate, &req.Message, &req.ClientIP, &req.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan rental request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}
