package rental

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"testing"
	"time"

	"car-rental/pkg/database"
	"car-rental/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRental(folderID string, createdAt time.Time) *model.Rental {
	return &model.Rental{
		FolderID:      folderID,
		VIN:           "1HGCM82633A004352",
		Make:          "Honda",
		Model:         "Accord",
		Color:         "Blue",
		CustomerEmail: "renter@example.com",
		CostPerDay:    "45",
		StartDate:     "2024-06-01",
		EndDate:       "2024-06-05",
		Status:        model.RentalStatusDraft,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func runRepositoryTests(t *testing.T, repo Repository) {
	ctx := context.Background()
	base := time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)
	first := uuid.NewString()
	second := uuid.NewString()

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.CreateRental(ctx, newRental(first, base)))
		require.NoError(t, repo.CreateRental(ctx, newRental(second, base.Add(time.Hour))))

		got, err := repo.GetRental(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, "Accord", got.Model)
		assert.Equal(t, model.RentalStatusDraft, got.Status)
	})

	t.Run("duplicate folder", func(t *testing.T) {
		err := repo.CreateRental(ctx, newRental(first, base))
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("missing rental", func(t *testing.T) {
		_, err := repo.GetRental(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		rentals, total, err := repo.ListRentals(ctx, 1, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, 2)
		require.Len(t, rentals, 1)
		assert.Equal(t, second, rentals[0].FolderID)
	})

	t.Run("update status and customer", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, first, model.RentalStatusOut))
		require.NoError(t, repo.UpdateCustomerName(ctx, first, "Jane Doe"))

		got, err := repo.GetRental(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, model.RentalStatusOut, got.Status)
		assert.Equal(t, "Jane Doe", got.CustomerName)
	})

	t.Run("update unknown folder is ignored", func(t *testing.T) {
		assert.NoError(t, repo.UpdateStatus(ctx, uuid.NewString(), model.RentalStatusOut))
	})

	t.Run("documents are last write wins", func(t *testing.T) {
		doc := &model.Document{
			FolderID:  first,
			Kind:      model.DocumentMileageOut,
			Data:      json.RawMessage(`{"mileage":100}`),
			UpdatedAt: base,
		}
		require.NoError(t, repo.SaveDocument(ctx, doc))

		doc.Data = json.RawMessage(`{"mileage":250}`)
		doc.UpdatedAt = base.Add(time.Minute)
		require.NoError(t, repo.SaveDocument(ctx, doc))

		docs, err := repo.GetDocuments(ctx, first)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.JSONEq(t, `{"mileage":250}`, string(docs[0].Data))
	})

	t.Run("event log", func(t *testing.T) {
		e1 := model.NewEvent(first, model.EventRentalCreated, "draft created", nil)
		e1.CreatedAt = base
		e2 := model.NewEvent(first, model.EventMileageOut, "vehicle out", map[string]string{"mileage": "100"})
		e2.CreatedAt = base.Add(time.Minute)

		require.NoError(t, repo.AppendEvent(ctx, &e1))
		require.NoError(t, repo.AppendEvent(ctx, &e2))

		events, err := repo.ListEvents(ctx, first)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, model.EventRentalCreated, events[0].Type)
		assert.Equal(t, "100", events[1].Detail["mileage"])
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTests(t, NewMemoryRepository())
}

// TestPostgresRepository runs against a live database when RENTAL_TEST_DSN is set
func TestPostgresRepository(t *testing.T) {
	dsn := os.Getenv("RENTAL_TEST_DSN")
	if dsn == "" {
		t.Skip("RENTAL_TEST_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(context.Background(), db))
	runRepositoryTests(t, NewRepository(db))
}
