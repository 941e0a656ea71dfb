package main

import (
	"car-rental/pkg/config"
	"car-rental/pkg/logger"
	"car-rental/service-api/internal/app"
)

func main() {
	// Initialize configuration
	cfg := config.NewConfig()

	// Initialize logger
	logger.InitLogger(cfg)

	// Create and start the application server
	server := app.NewAppServer(cfg)
	server.Serve()
}
