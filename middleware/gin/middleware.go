package ginmw

import (
	"github.com/gin-gonic/gin"
	"github.com/reoring/auda"
	"github.com/reoring/auda/middleware"
)

// Aggregate builds the request Aggregate with opt and stores it in the request
// context for the rest of the chain.
func Aggregate(opt auda.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, cleanup := middleware.Build(c.Request, opt)
		defer cleanup()
		c.Request = c.Request.WithContext(middleware.ContextWithAggregate(c.Request.Context(), a))
		c.Next()
	}
}

// GetAggregate fetches the Aggregate from gin.Context.
func GetAggregate(c *gin.Context) (*auda.Aggregate, bool) {
	return middleware.AggregateFromContext(c.Request.Context())
}
