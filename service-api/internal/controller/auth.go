package controller

import (
	"errors"
	"net/http"

	"car-rental/pkg/auth"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	authService "car-rental/service-api/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// Login handles admin authentication
func (ctrl *controller) Login(c *gin.Context) {
	var req model.LoginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error(err, "failed to bind login request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	response, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			logger.Warnf("failed admin login for %s from %s", req.Email, c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Error(err, "failed to login admin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	logger.Infof("admin logged in: %s", response.Admin.Email)
	c.JSON(http.StatusOK, response)
}

// Logout ends the current admin session
func (ctrl *controller) Logout(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), claims); err != nil {
		logger.Error(err, "failed to logout admin")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	logger.Infof("admin logged out: %s", claims.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the admin behind the session
func (ctrl *controller) GetProfile(c *gin.Context) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, model.Admin{Email: claims.Email, Role: claims.Role})
}
