package echomw

import (
	"github.com/labstack/echo/v4"
	"github.com/reoring/auda"
	"github.com/reoring/auda/middleware"
)

// Aggregate builds the request Aggregate with opt and stores it in the request
// context before calling next.
func Aggregate(opt auda.Options) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, cleanup := middleware.Build(c.Request(), opt)
			defer cleanup()
			ctx := middleware.ContextWithAggregate(c.Request().Context(), a)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetAggregate fetches the Aggregate from echo.Context.
func GetAggregate(c echo.Context) (*auda.Aggregate, bool) {
	return middleware.AggregateFromContext(c.Request().Context())
}
