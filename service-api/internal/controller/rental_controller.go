package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	"car-rental/pkg/storage"
	rentalService "car-rental/service-api/internal/service/rental"

	"github.com/gin-gonic/gin"
)

// RentalController handles the admin side of rentals
type RentalController struct {
	rentalService rentalService.Service
}

// NewRentalController creates a new rental controller
func NewRentalController(rentalService rentalService.Service) *RentalController {
	return &RentalController{
		rentalService: rentalService,
	}
}

// CreateRental handles POST /api/v1/admin/rentals
func (rc *RentalController) CreateRental(c *gin.Context) {
	var req model.CreateRentalRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	response, err := rc.rentalService.CreateDraft(c.Request.Context(), &req)
	if err != nil {
		var validationErr *linktoken.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation_error",
				"message": err.Error(),
				"field":   string(validationErr.Field),
			})
			return
		}
		if errors.Is(err, rentalService.ErrInvalidDates) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
			return
		}
		logger.Error(err, "failed to create rental draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rental"})
		return
	}

	logger.Infof("rental draft %s created for %s", response.Rental.FolderID, response.Rental.CustomerEmail)
	c.JSON(http.StatusCreated, response)
}

// ListRentals handles GET /api/v1/admin/rentals
func (rc *RentalController) ListRentals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	response, err := rc.rentalService.ListRentals(c.Request.Context(), page, pageSize)
	if err != nil {
		logger.Error(err, "failed to list rentals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rentals"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRental handles GET /api/v1/admin/rentals/:folderId
func (rc *RentalController) GetRental(c *gin.Context) {
	detail, err := rc.rentalService.GetDetail(c.Request.Context(), c.Param("folderId"))
	if err != nil {
		if errors.Is(err, rentalService.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rental not found"})
			return
		}
		logger.Error(err, "failed to get rental")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rental"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetFile handles GET /api/v1/admin/files/*path, serving files of the
// local storage provider
func (rc *RentalController) GetFile(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	if p == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file path required"})
		return
	}

	body, info, err := rc.rentalService.OpenFile(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}
		logger.Error(err, "failed to open rental file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
		return
	}
	defer body.Close()

	c.Header("Cache-Control", "private, max-age=300")
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, body, map[string]string{
		"Content-Disposition": "inline; filename=\"" + info.Name + "\"",
	})
}
