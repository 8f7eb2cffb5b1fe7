package middleware

import (
	"context"
	"net/http"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// CallerKey is the context key for the calling account address
	CallerKey ContextKey = "caller_address"
)

// CallerMiddleware resolves the calling account from the X-Caller-Address
// header. The treasury identifies actors by account address, not by user
// id; signature verification sits in front of this service, so by the time
// a request reaches us the address header is trusted. The header is
// optional here; handlers that need an identity reject its absence.
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if caller := r.Header.Get("X-Caller-Address"); caller != "" {
			ctx := context.WithValue(r.Context(), CallerKey, caller)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// GetCaller extracts the calling account address from the request context
func GetCaller(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(CallerKey).(string)
	return caller, ok && caller != ""
}
