package controller

import (
	"errors"
	"net/http"
	"strconv"

	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	requestService "car-rental/service-api/internal/service/request"

	"github.com/gin-gonic/gin"
)

// RequestController handles the public rental request form
type RequestController struct {
	requestService requestService.Service
}

// NewRequestController creates a new request controller
func NewRequestController(requestService requestService.Service) *RequestController {
	return &RequestController{
		requestService: requestService,
	}
}

// SubmitRequest handles POST /api/v1/requests
func (rc *RequestController) SubmitRequest(c *gin.Context) {
	var req model.CreateRentalRequestRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	created, err := rc.requestService.Submit(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		if errors.Is(err, requestService.ErrInvalidDates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
			return
		}
		logger.Error(err, "failed to submit rental request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit request"})
		return
	}

	logger.Infof("rental request %s received from %s", created.ID, created.Email)
	c.JSON(http.StatusCreated, gin.H{
		"id":      created.ID,
		"message": "Thanks! We will get back to you shortly.",
	})
}

// ListRequests handles GET /api/v1/admin/requests
func (rc *RequestController) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	response, err := rc.requestService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error(err, "failed to list rental requests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}

	c.JSON(http.StatusOK, response)
}
