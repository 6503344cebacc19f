package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger returns a middleware that logs HTTP requests. The lookup target is
// logged, never the caller's user agent.
func Logger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				// Log level based on status code
				logFn := logger.Info
				switch {
				case status >= 500:
					logFn = logger.Error
				case status >= 400:
					logFn = logger.Warn
				case r.URL.Path == "/health":
					logFn = logger.Debug
				}

				attrs := []any{
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"duration", time.Since(start),
					"bytes", ww.BytesWritten(),
					"client_ip", GetClientIP(r),
					"request_id", GetRequestID(r.Context()),
				}
				if target := r.URL.Query().Get("ip"); target != "" {
					attrs = append(attrs, "target_ip", target)
				}

				logFn("HTTP request", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
