package middleware

import (
	"car-rental/pkg/linktoken"

	"github.com/gin-gonic/gin"
)

// RequireLink decodes and validates the t query parameter for step before
// the handler runs. Handlers read the payload with LinkFromContext.
func RequireLink(sequencer *linktoken.Sequencer, step linktoken.Step) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := sequencer.Consume(step, c.Query(TokenParam))
		if err != nil {
			AbortWithLinkError(c, err)
			return
		}

		c.Set(ContextKeyLink, payload)
		c.Next()
	}
}
