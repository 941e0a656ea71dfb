package controller

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	mdw "car-rental/service-api/internal/app/middleware"
	rentalService "car-rental/service-api/internal/service/rental"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// LinkController handles the capability link pages. Every route runs behind
// middleware.RequireLink, so handlers only see validated payloads.
type LinkController struct {
	rentalService rentalService.Service
}

// NewLinkController creates a new link controller
func NewLinkController(rentalService rentalService.Service) *LinkController {
	return &LinkController{
		rentalService: rentalService,
	}
}

// Preview handles GET on every link route and returns the payload the page
// prefills its form with
func (lc *LinkController) Preview(c *gin.Context) {
	link, ok := lc.link(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":       link,
		"vehicle":    link.Vehicle(),
		"expires_at": link.ExpiresAt().UTC(),
	})
}

// SubmitCustomerInfo handles POST /api/v1/links/customer-info. The packet
// arrives as JSON, either as the whole body or as the packet field of a
// multipart form carrying the photos.
func (lc *LinkController) SubmitCustomerInfo(c *gin.Context) {
	link, ok := lc.link(c)
	if !ok {
		return
	}

	var packet model.CustomerPacket
	photos := make(map[string]*multipart.FileHeader)

	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&packet); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
			return
		}
	} else {
		raw := c.PostForm("packet")
		if raw == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "packet is required", "field": "packet"})
			return
		}
		if err := json.Unmarshal([]byte(raw), &packet); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "packet is not valid JSON", "field": "packet"})
			return
		}
		if err := binding.Validator.ValidateStruct(&packet); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
			return
		}

		for _, field := range []string{model.PhotoLicenseFront, model.PhotoLicenseBack, model.PhotoInsuranceCard} {
			fh, err := c.FormFile(field)
			if err != nil {
				if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
					continue
				}
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid upload", "field": field})
				return
			}
			photos[field] = fh
		}
	}

	if !packet.AgreedToTerms {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "the rental terms must be accepted", "field": "agreedToTerms"})
		return
	}

	response, err := lc.rentalService.SubmitCustomerInfo(c.Request.Context(), link, &packet, photos)
	if err != nil {
		lc.stepError(c, err, "customer info")
		return
	}

	logger.Infof("customer info stored for folder %s", link.FolderID)
	c.JSON(http.StatusOK, response)
}

// SubmitPickupInstructions handles POST /api/v1/links/pickup-instructions
func (lc *LinkController) SubmitPickupInstructions(c *gin.Context) {
	lc.submitInstructions(c, lc.rentalService.SubmitPickupInstructions, "pickup instructions")
}

// SubmitDropoffInstructions handles POST /api/v1/links/dropoff-instructions
func (lc *LinkController) SubmitDropoffInstructions(c *gin.Context) {
	lc.submitInstructions(c, lc.rentalService.SubmitDropoffInstructions, "dropoff instructions")
}

type instructionsFunc func(ctx context.Context, link *linktoken.Payload, instructions *model.Instructions) (*model.StepResponse, error)

func (lc *LinkController) submitInstructions(c *gin.Context, submit instructionsFunc, action string) {
	link, ok := lc.link(c)
	if !ok {
		return
	}

	var req model.Instructions
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	response, err := submit(c.Request.Context(), link, &req)
	if err != nil {
		lc.stepError(c, err, action)
		return
	}

	logger.Infof("%s stored for folder %s", action, link.FolderID)
	c.JSON(http.StatusOK, response)
}

// SubmitMileageOut handles POST /api/v1/links/mileage-out
func (lc *LinkController) SubmitMileageOut(c *gin.Context) {
	lc.submitMileage(c, lc.rentalService.SubmitMileageOut, false)
}

// SubmitMileageIn handles POST /api/v1/links/mileage-in
func (lc *LinkController) SubmitMileageIn(c *gin.Context) {
	lc.submitMileage(c, lc.rentalService.SubmitMileageIn, true)
}

type mileageFunc func(ctx context.Context, link *linktoken.Payload, report *model.MileageReport, photo *multipart.FileHeader) (*model.StepResponse, error)

func (lc *LinkController) submitMileage(c *gin.Context, submit mileageFunc, withReview bool) {
	link, ok := lc.link(c)
	if !ok {
		return
	}

	var report model.MileageReport
	if err := c.ShouldBind(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	// multipart forms carry the review as flat rating and review fields
	if withReview && report.Review == nil && (c.PostForm("rating") != "" || c.PostForm("review") != "") {
		var review model.Review
		if err := c.ShouldBindWith(&review, binding.Form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error(), "field": "rating"})
			return
		}
		report.Review = &review
	}
	if report.Review != nil {
		if err := binding.Validator.ValidateStruct(report.Review); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error(), "field": "rating"})
			return
		}
	}

	photo, ok := lc.optionalFile(c, "photo")
	if !ok {
		return
	}

	response, err := submit(c.Request.Context(), link, &report, photo)
	if err != nil {
		lc.stepError(c, err, "mileage")
		return
	}

	logger.Infof("mileage %d recorded for folder %s", report.Mileage, link.FolderID)
	c.JSON(http.StatusOK, response)
}

// SubmitSignedContract handles POST /api/v1/links/signed-contract
func (lc *LinkController) SubmitSignedContract(c *gin.Context) {
	link, ok := lc.link(c)
	if !ok {
		return
	}

	file, ok := lc.optionalFile(c, "contract")
	if !ok {
		return
	}

	response, err := lc.rentalService.SubmitSignedContract(c.Request.Context(), link, file)
	if err != nil {
		lc.stepError(c, err, "signed contract")
		return
	}

	logger.Infof("signed contract stored for folder %s", link.FolderID)
	c.JSON(http.StatusOK, response)
}

func (lc *LinkController) link(c *gin.Context) (*linktoken.Payload, bool) {
	link, ok := mdw.LinkFromContext(c)
	if !ok {
		logger.Warnf("link route %s registered without RequireLink", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return nil, false
	}
	return link, true
}

// optionalFile returns nil when field was not sent
func (lc *LinkController) optionalFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	if c.ContentType() == binding.MIMEJSON {
		return nil, true
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": "invalid upload", "field": field})
		return nil, false
	}
	return fh, true
}

func (lc *LinkController) stepError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, rentalService.ErrInvalidUpload), errors.Is(err, rentalService.ErrMissingFile):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
	default:
		logger.Errorf(err, "failed to store %s", action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store " + action})
	}
}
