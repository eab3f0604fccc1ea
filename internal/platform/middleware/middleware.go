// Package middleware provides the request-scoped middleware chain shared by
// all HTTP endpoints: request IDs for correlation and a pinned request time
// consumed by the evaluation engine.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MatteoMarello/bidpilot-mvp/pkg/requestcontext"
)

// RequestID assigns a UUID to every request unless the caller supplied one
// via the X-Request-ID header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTime captures the current time at the start of the request and
// stores it in the context, so deadline checks within one evaluation all see
// the same "now".
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
