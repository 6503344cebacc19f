package middleware

import "net/http"

// Cache-Control policies
const (
	// NoStore is for responses describing the caller itself
	NoStore = "no-store, max-age=0"
	// PublicHour is for lookups of an explicit IP
	PublicHour = "public, max-age=3600"
)

// CacheControl sets the Cache-Control header on every response
func CacheControl(value string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
