package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"car-rental/pkg/config"
	"car-rental/pkg/database"
	"car-rental/pkg/logger"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

var (
	embeddedDB *embeddedpostgres.EmbeddedPostgres
	dbPort     uint32
	dbReady    atomic.Bool
)

// findAvailablePort finds an available port starting from the given port
func findAvailablePort(startPort uint32) uint32 {
	for port := startPort; port < startPort+100; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port
		}
	}
	logger.Fatalf("could not find an available port starting from %d", startPort)
	return 0
}

func startEmbeddedDB(ctx context.Context) {
	logger.Info("Starting embedded PostgreSQL...")

	port := findAvailablePort(15432)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Fatalf("failed to get user home directory: %v", err)
	}

	// rentals survive restarts, so the data directory is kept
	root := filepath.Join(homeDir, ".car-rental")
	dataDir := filepath.Join(root, "data")
	runtimeDir := filepath.Join(root, "runtime")
	binariesDir := filepath.Join(root, "binaries")

	for _, dir := range []string{dataDir, runtimeDir, binariesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	embeddedDB = embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Username("postgres").
		Password("postgres").
		Database("carrental").
		Port(port).
		RuntimePath(runtimeDir).
		DataPath(dataDir).
		BinariesPath(binariesDir).
		StartTimeout(60 * time.Second))

	if err := embeddedDB.Start(); err != nil {
		logger.Fatalf("failed to start embedded PostgreSQL: %v", err)
	}
	dbPort = port

	// connecting through the database package also applies the migrations
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Provider:     config.DatabaseProviderPostgres,
			Host:         "localhost",
			Port:         fmt.Sprintf("%d", port),
			Username:     "postgres",
			Password:     "postgres",
			Name:         "carrental",
			SSLMode:      "disable",
			MaxOpenConns: 2,
			MaxIdleConns: 1,
		},
	}

	for i := 1; ; i++ {
		db, err := database.NewPgDB(ctx, cfg)
		if err == nil {
			db.Close()
			break
		}
		if i == 30 {
			logger.Fatalf("embedded PostgreSQL did not accept connections: %v", err)
		}
		logger.Debugf("waiting for PostgreSQL... (%d/30)", i)
		time.Sleep(time.Second)
	}

	dbReady.Store(true)
	logger.Infof("✅ Embedded PostgreSQL started successfully on port %d", port)

	<-ctx.Done()

	logger.Info("Shutting down embedded PostgreSQL...")
	if err := embeddedDB.Stop(); err != nil {
		logger.Error(err, "failed to stop embedded PostgreSQL")
	}
}

// GetDBPort returns the port of the embedded PostgreSQL instance
func GetDBPort() uint32 {
	return dbPort
}
