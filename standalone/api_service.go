package main

import (
	"context"

	"car-rental/pkg/config"
	api "car-rental/service-api"
)

// startAPIService blocks until the server shuts down on SIGINT or SIGTERM
func startAPIService(ctx context.Context, cfg *config.Config) {
	app := api.NewAppServer(cfg)
	app.Serve()
}
