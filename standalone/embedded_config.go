package main

import (
	"fmt"
	"net"
	"time"

	"car-rental/pkg/auth"
	"car-rental/pkg/config"
	"car-rental/pkg/logger"
)

const (
	standaloneAdminEmail    = "admin@car-rental.local"
	standaloneAdminPassword = "admin"
)

// createEmbeddedConfig creates a hardcoded configuration for the standalone application
func createEmbeddedConfig() *config.Config {
	return &config.Config{
		Port:       "8080",
		JWTSecret:  "embedded-jwt-secret-key-change-in-production",
		LinkSecret: "embedded-link-secret-change-in-production",
		App: config.AppConfig{
			Name:    "Car Rental",
			BaseURL: "http://localhost:3000",
		},
		Admin: config.AdminConfig{
			Email: standaloneAdminEmail,
		},
		Database: config.DatabaseConfig{
			Provider:        config.DatabaseProviderPostgres,
			Name:            "carrental",
			Host:            "localhost",
			Port:            "15432",
			Username:        "postgres",
			Password:        "postgres",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
			SSLMode:         "disable",
		},
		Log: config.LogConfig{
			Level:  "debug",
			Format: "console",
		},
		Redis: config.RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Storage: config.StorageConfig{
			Provider:     "local",
			LocalPath:    "./data/rentals",
			LocalBaseURL: "http://localhost:8080/api/v1/admin/files",
		},
		Email: config.EmailConfig{
			Provider: "noop",
			Templates: config.EmailTemplateConfig{
				BaseURL: "http://localhost:3000",
				AppName: "Car Rental",
			},
		},
		RateLimit: config.RateLimitConfig{
			Requests: 20,
			Window:   time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
}

// updateConfigWithEmbeddedServices updates the config with actual embedded service addresses
func updateConfigWithEmbeddedServices(cfg *config.Config) {
	// update Redis address if embedded Redis is running
	if host, port, err := net.SplitHostPort(GetRedisAddr()); err == nil {
		cfg.Redis.Host = host
		cfg.Redis.Port = port
	}

	cfg.Database.Host = "localhost"
	cfg.Database.Port = fmt.Sprintf("%d", GetDBPort())

	hash, err := auth.HashPassword(standaloneAdminPassword)
	if err != nil {
		logger.Fatalf("failed to hash standalone admin password: %v", err)
	}
	cfg.Admin.PasswordHash = hash
	logger.Infof("🔑 Admin login: %s / %s", standaloneAdminEmail, standaloneAdminPassword)
}
