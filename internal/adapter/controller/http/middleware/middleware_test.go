package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// ============================================================================
// Client IP
// ============================================================================

func TestDetectClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"no headers", nil, UnknownClientIP},
		{"x-real-ip wins", map[string]string{
			"X-Real-IP": "1.1.1.1", "X-Forwarded-For": "2.2.2.2", "CF-Connecting-IP": "3.3.3.3",
		}, "1.1.1.1"},
		{"first forwarded-for entry", map[string]string{
			"X-Forwarded-For": "2.2.2.2, 10.0.0.1, 10.0.0.2",
		}, "2.2.2.2"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "3.3.3.3", "X-Client-IP": "4.4.4.4"}, "3.3.3.3"},
		{"x-client-ip last", map[string]string{"X-Client-IP": "4.4.4.4"}, "4.4.4.4"},
		{"ipv6", map[string]string{"X-Real-IP": "2001:db8::1"}, "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, DetectClientIP(req))
		})
	}
}

func TestClientIP_StoresInContext(t *testing.T) {
	var seen string
	h := ClientIP(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetClientIP(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "9.9.9.9", seen)
}

// ============================================================================
// Request ID
// ============================================================================

func TestRequestID(t *testing.T) {
	t.Run("generates when missing", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses valid inbound id", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := httptest.NewRecorder()
		RequestID(okHandler).ServeHTTP(rec, req)

		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces malformed inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		RequestID(okHandler).ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
	})

	t.Run("visible to chi", func(t *testing.T) {
		var chiID, ownID string
		h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			chiID = chimw.GetReqID(r.Context())
			ownID = GetRequestID(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, chiID)
		assert.Equal(t, ownID, chiID)
	})
}

// ============================================================================
// Headers
// ============================================================================

func TestCacheControl(t *testing.T) {
	rec := httptest.NewRecorder()
	CacheControl(NoStore)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ip", nil))
	assert.Equal(t, "no-store, max-age=0", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	CacheControl(PublicHour)(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/osint", nil))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

// ============================================================================
// Logger
// ============================================================================

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := ClientIP(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/osint?ip=8.8.8.8", nil)
	req.Header.Set("X-Real-IP", "1.2.3.4")
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=400")
	assert.Contains(t, out, "client_ip=1.2.3.4")
	assert.Contains(t, out, "target_ip=8.8.8.8")
}
