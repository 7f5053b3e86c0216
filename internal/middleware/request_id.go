package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags every request with an id, honoring one supplied by the
// caller so log lines can be correlated across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(HeaderRequestID, id)
		c.Set("requestID", id)

		c.Next()
	}
}
