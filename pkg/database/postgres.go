package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"car-rental/pkg/config"
	"car-rental/pkg/logger"

	_ "github.com/lib/pq"
)

// NewPgDB opens the Postgres pool and brings the schema up to date
func NewPgDB(
	ctx context.Context,
	cfg *config.Config,
) (*sql.DB, error) {
	dsn := getDSN(cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if cfg.Database.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// ping db to ensure the connection is alive and working
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = db.PingContext(pingCtx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Infof("connected to postgres %s:%s/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)

	return db, nil
}

func getDSN(
	cfg config.DatabaseConfig,
) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Name,
		sslMode,
	)
}
