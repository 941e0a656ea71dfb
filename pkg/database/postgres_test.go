package database

import (
	"testing"

	"car-rental/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "explicit ssl mode",
			cfg: config.DatabaseConfig{
				Host: "db", Port: "5432", Username: "rental", Password: "pw", Name: "rentals", SSLMode: "require",
			},
			want: "host=db port=5432 user=rental password=pw dbname=rentals sslmode=require",
		},
		{
			name: "defaults to disable",
			cfg: config.DatabaseConfig{
				Host: "localhost", Port: "5433", Username: "postgres", Password: "postgres", Name: "car_rental",
			},
			want: "host=localhost port=5433 user=postgres password=postgres dbname=car_rental sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getDSN(tt.cfg))
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}
