package middleware

import (
	"context"
	"net/http"

	"github.com/reoring/auda"
)

// ctxKeyAggregate is a typed context key for storing the request Aggregate.
type ctxKeyAggregate struct{}

// ContextWithAggregate attaches a to the context.
func ContextWithAggregate(ctx context.Context, a *auda.Aggregate) context.Context {
	return context.WithValue(ctx, ctxKeyAggregate{}, a)
}

// AggregateFromContext retrieves the Aggregate stored by ContextWithAggregate.
func AggregateFromContext(ctx context.Context) (*auda.Aggregate, bool) {
	a, ok := ctx.Value(ctxKeyAggregate{}).(*auda.Aggregate)
	return a, ok
}

// Build creates the aggregate for r and returns it with a cleanup func that
// removes spooled uploads once the request is done. Adapters call Build
// before the next handler and cleanup after it.
func Build(r *http.Request, opt auda.Options) (*auda.Aggregate, func()) {
	a := auda.FromRequest(r, opt)
	return a, func() {
		_ = a.RemoveUploads()
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
}

// Handler returns net/http middleware that builds the request Aggregate and
// stores it in the request context.
func Handler(opt auda.Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a, cleanup := Build(r, opt)
			defer cleanup()
			next.ServeHTTP(w, r.WithContext(ContextWithAggregate(r.Context(), a)))
		})
	}
}
