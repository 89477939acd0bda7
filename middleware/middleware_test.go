package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/auda"
	"github.com/reoring/auda/middleware"
)

func TestHandler_StoresAggregate(t *testing.T) {
	var got any
	h := middleware.Handler(auda.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := middleware.AggregateFromContext(r.Context())
		require.True(t, ok)
		got = a.Get("user")
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPost, "/?user.id=7", strings.NewReader(`{"user.name":"Ann"}`))
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, map[string]any{"id": "7", "name": "Ann"}, got)
}

func TestAggregateFromContext_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.AggregateFromContext(r.Context())
	assert.False(t, ok)
}
