package middlewares

import (
	"bitbucket.org/mmdatafocus/stocks_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const correlationHeader = "X-Correlation-Id"

// CorrelationMiddleware tags every request with a correlation id, taking the
// caller's when present so ids survive service hops.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get(correlationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(correlationHeader, id)
		c.Next()
	}
}
