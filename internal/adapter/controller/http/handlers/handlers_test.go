package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/ipflix/ipflix/internal/adapter/external/geolocation"
	"github.com/ipflix/ipflix/internal/adapter/external/httpcache"
	"github.com/ipflix/ipflix/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock IntelService
// =============================================================================

type MockIntelService struct {
	mock.Mock
}

func (m *MockIntelService) ClientInfo(ctx context.Context, ip, userAgent string) entity.ClientInfo {
	args := m.Called(ctx, ip, userAgent)
	return args.Get(0).(entity.ClientInfo)
}

func (m *MockIntelService) NetworkDetails(ctx context.Context, ip string) entity.NetworkDetailsResponse {
	args := m.Called(ctx, ip)
	return args.Get(0).(entity.NetworkDetailsResponse)
}

func (m *MockIntelService) Threat(ctx context.Context, ip string) entity.ThreatReport {
	args := m.Called(ctx, ip)
	return args.Get(0).(entity.ThreatReport)
}

func (m *MockIntelService) OSINT(ctx context.Context, ip string) entity.OSINTResult {
	args := m.Called(ctx, ip)
	return args.Get(0).(entity.OSINTResult)
}

type fakeCache struct{}

func (fakeCache) Stats() httpcache.Stats {
	return httpcache.Stats{Size: 3, Hits: 7, Misses: 3, HitRate: 70, TTL: "1h0m0s"}
}

func newTestRouter(svc IntelService, rateLimit int) http.Handler {
	return NewRouter(RouterConfig{
		Service:            svc,
		Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimitPerMinute: rateLimit,
		Health: HealthInfo{
			Version:     "test",
			Environment: "test",
			Geolocation: []string{"ipapi.co", "ip-api.com", "edge-headers"},
			Cache:       fakeCache{},
		},
	})
}

func do(t *testing.T, h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// /ip and /api/ip
// =============================================================================

func TestPlainIP(t *testing.T) {
	h := newTestRouter(new(MockIntelService), 0)

	rec := do(t, h, "/ip", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "203.0.113.7", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store, max-age=0", rec.Header().Get("Cache-Control"))
}

func TestPlainIP_NoHeaders(t *testing.T) {
	rec := do(t, newTestRouter(new(MockIntelService), 0), "/ip", nil)
	assert.Equal(t, "0.0.0.0", rec.Body.String())
}

func TestClientInfo(t *testing.T) {
	svc := new(MockIntelService)
	svc.On("ClientInfo", mock.MatchedBy(func(ctx context.Context) bool {
		// the edge strategy must see the inbound headers
		geo, err := geolocation.NewEdgeHeaders().Locate(ctx, "")
		return err == nil && geo.CountryCode == "NL"
	}), "198.51.100.4", "curl/8.0").Return(entity.ClientInfo{
		IP:          "198.51.100.4",
		IPVersion:   "IPv4",
		GeoLocation: entity.UnknownGeoLocation(),
		UserAgent:   "curl/8.0",
		Browser:     "Unknown",
		OS:          "Unknown",
		Device:      "Desktop",
		Timestamp:   "2024-05-01T12:00:00Z",
	})

	rec := do(t, newTestRouter(svc, 0), "/api/ip", map[string]string{
		"X-Real-IP":           "198.51.100.4",
		"User-Agent":          "curl/8.0",
		"x-vercel-ip-country": "NL",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store, max-age=0", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "198.51.100.4", body["ip"])
	assert.Equal(t, "XX", body["countryCode"])
	assert.Equal(t, "UTC", body["timezone"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["timestamp"])
	svc.AssertExpectations(t)
}

// =============================================================================
// Lookup endpoints
// =============================================================================

func TestLookupEndpoints_RequireIP(t *testing.T) {
	h := newTestRouter(new(MockIntelService), 0)

	for _, path := range []string{"/api/ip/details", "/api/ip/threat", "/api/osint"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, h, path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"IP address is required"}`, rec.Body.String())
		})
	}
}

func TestDetails(t *testing.T) {
	svc := new(MockIntelService)
	svc.On("NetworkDetails", mock.Anything, "8.8.8.8").Return(entity.NetworkDetailsResponse{
		NetworkDetails: entity.NetworkDetails{ISP: "GOOGLE", Org: "GOOGLE", ASN: "AS15169", Hostname: "dns.google"},
	})

	rec := do(t, newTestRouter(svc, 0), "/api/ip/details?ip=8.8.8.8", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{
		"isp": "GOOGLE", "org": "GOOGLE", "asn": "AS15169", "hostname": "dns.google",
		"security": {"isVpn": false, "isProxy": false, "isTor": false}
	}`, rec.Body.String())
}

func TestThreat_NullHalves(t *testing.T) {
	svc := new(MockIntelService)
	svc.On("Threat", mock.Anything, "1.2.3.4").Return(entity.ThreatReport{
		ASN: &entity.ASNDetails{ASN: "AS1", Name: "Example", Domain: "example.net", Route: "1.2.3.0/24", Type: "isp", Country: "US"},
	})

	rec := do(t, newTestRouter(svc, 0), "/api/ip/threat?ip=1.2.3.4", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["threat"])
	require.NotNil(t, body["asn"])
	assert.Equal(t, "AS1", body["asn"].(map[string]any)["asn"])
}

func TestOSINT(t *testing.T) {
	svc := new(MockIntelService)
	svc.On("OSINT", mock.Anything, "8.8.8.8").Return(entity.OSINTResult{
		Shodan:          entity.EmptyShodanData(),
		RiskScore:       0,
		RiskLevel:       entity.RiskSafe,
		Recommendations: []string{"No security issues detected in public databases"},
	})

	rec := do(t, newTestRouter(svc, 0), "/api/osint?ip=8.8.8.8", map[string]string{"Origin": "https://example.org"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body["abuseipdb"])
	assert.Equal(t, "Safe", body["riskLevel"])
	assert.Equal(t, []any{}, body["shodan"].(map[string]any)["ports"])
}

func TestPanicBecomesGeneric500(t *testing.T) {
	svc := new(MockIntelService)
	svc.On("OSINT", mock.Anything, "8.8.8.8").Run(func(mock.Arguments) {
		panic("upstream exploded with secret detail")
	})

	rec := do(t, newTestRouter(svc, 0), "/api/osint?ip=8.8.8.8", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to retrieve OSINT intelligence"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestJSONResponse_EncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONResponse(rec, http.StatusOK, map[string]any{"score": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

// =============================================================================
// Health and rate limiting
// =============================================================================

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(new(MockIntelService), 0), "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, []string{"ipapi.co", "ip-api.com", "edge-headers"}, body.Geolocation)
	require.NotNil(t, body.Cache)
	assert.Equal(t, int64(7), body.Cache.Hits)
}

func TestRateLimitByClientIP(t *testing.T) {
	h := newTestRouter(new(MockIntelService), 2)
	a := map[string]string{"X-Real-IP": "203.0.113.1"}
	b := map[string]string{"X-Real-IP": "203.0.113.2"}

	assert.Equal(t, http.StatusOK, do(t, h, "/ip", a).Code)
	assert.Equal(t, http.StatusOK, do(t, h, "/ip", a).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, h, "/ip", a).Code)
	assert.Equal(t, http.StatusOK, do(t, h, "/ip", b).Code)
}
