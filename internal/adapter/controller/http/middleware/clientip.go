package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UnknownClientIP is used when no forwarding header identifies the caller
const UnknownClientIP = "0.0.0.0"

type clientIPKey struct{}

// ClientIPHeaders are consulted in order; the first non-empty one wins.
// X-Forwarded-For contributes its first entry.
var ClientIPHeaders = []string{
	"X-Real-IP",
	"X-Forwarded-For",
	"CF-Connecting-IP",
	"X-Client-IP",
}

// DetectClientIP returns the caller address from the forwarding headers.
// The socket address is never used: behind the edge it is the proxy's.
func DetectClientIP(r *http.Request) string {
	for _, name := range ClientIPHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			v, _, _ = strings.Cut(v, ",")
		}
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return UnknownClientIP
}

// ClientIP stores the detected caller address in the request context
func ClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), clientIPKey{}, DetectClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClientIP returns the address stored by ClientIP, detecting it from the
// request when the middleware did not run.
func GetClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok {
		return ip
	}
	return DetectClientIP(r)
}

// ClientIPKey keys rate limiting by the detected caller address
func ClientIPKey(r *http.Request) (string, error) {
	return GetClientIP(r), nil
}
