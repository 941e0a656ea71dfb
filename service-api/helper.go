package helper

import (
	"car-rental/pkg/config"
	"car-rental/service-api/internal/app"
)

// NewAppServer exposes the API server to runners outside service-api, such
// as the standalone binary
func NewAppServer(
	cfg *config.Config,
) *app.AppServer {
	return app.NewAppServer(cfg)
}
