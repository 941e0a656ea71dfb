package controller

import (
	authService "car-rental/service-api/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// ControllerProvider defines the controller interface
type ControllerProvider interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetProfile(c *gin.Context)
}

// controller implements the controller interface
type controller struct {
	authService authService.Service
}

// NewController creates a new controller instance
func NewController(authService authService.Service) ControllerProvider {
	return &controller{
		authService: authService,
	}
}
