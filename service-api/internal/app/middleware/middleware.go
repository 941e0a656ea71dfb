package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"

	"github.com/gin-gonic/gin"
)

// context keys
const (
	ContextKeyLink = "link"
)

// TokenParam is the query parameter carrying a capability token
const TokenParam = "t"

// LinkFromContext returns the payload set by RequireLink
func LinkFromContext(c *gin.Context) (*linktoken.Payload, bool) {
	v, exists := c.Get(ContextKeyLink)
	if !exists {
		return nil, false
	}
	payload, ok := v.(*linktoken.Payload)
	return payload, ok
}

// AbortWithLinkError maps a link failure onto its response. The cause of an
// invalid token is logged and never returned to the client.
func AbortWithLinkError(c *gin.Context, err error) {
	var (
		phaseErr      *linktoken.PhaseError
		validationErr *linktoken.ValidationError
	)

	switch {
	case errors.Is(err, linktoken.ErrLinkExpired):
		c.AbortWithStatusJSON(http.StatusGone, gin.H{
			"error":   "link_expired",
			"message": "Link expired",
		})
	case errors.As(err, &phaseErr):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "invalid_phase",
			"message": fmt.Sprintf("Link is for %s, this page expects %s", phaseErr.Actual, phaseErr.Expected),
		})
	case errors.Is(err, linktoken.ErrInvalidPhase):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "invalid_phase",
			"message": "Link is not valid for this page",
		})
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"message": fmt.Sprintf("Link has a missing or invalid %s", validationErr.Field),
			"field":   string(validationErr.Field),
		})
	case errors.Is(err, linktoken.ErrInvalidToken):
		logger.WarnFields("rejected link", map[string]interface{}{
			"route":     c.FullPath(),
			"client_ip": c.ClientIP(),
			"cause":     err.Error(),
		})
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_token",
			"message": "Invalid link",
		})
	default:
		logger.Error(err, "link check failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
