package threatintel

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
)

const (
	shodanProvider                 = "Shodan InternetDB"
	DefaultShodanInternetDBBaseURL = "https://internetdb.shodan.io/"
	osintUserAgent                 = "IPFlix-OSINT/1.0"
)

// ShodanInternetDBClient queries Shodan's free InternetDB API
// Free API - no authentication required
// Provides: open ports, hostnames, tags, CPEs, vulnerabilities
type ShodanInternetDBClient struct {
	httpClient *http.Client
	baseURL    string
}

// ShodanInternetDBConfig holds InternetDB client configuration
type ShodanInternetDBConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// ShodanInternetDBResponse represents the API response
type ShodanInternetDBResponse struct {
	Hostnames []string `json:"hostnames"`
	IP        string   `json:"ip"`
	Ports     []int    `json:"ports"`
	Tags      []string `json:"tags"`
	CPEs      []string `json:"cpes"`
	Vulns     []string `json:"vulns"`
}

// NewShodanInternetDBClient creates a new Shodan InternetDB client
func NewShodanInternetDBClient(cfg ShodanInternetDBConfig) *ShodanInternetDBClient {
	baseURL := orDefault(cfg.BaseURL, DefaultShodanInternetDBBaseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ShodanInternetDBClient{
		httpClient: defaultClient(cfg.HTTPClient),
		baseURL:    baseURL,
	}
}

// IsConfigured returns true (InternetDB is always available - no API key needed)
func (c *ShodanInternetDBClient) IsConfigured() bool {
	return true
}

// GetProviderName returns the provider name
func (c *ShodanInternetDBClient) GetProviderName() string {
	return shodanProvider
}

// CheckIP queries Shodan InternetDB for an IP address.
// A 404 means the IP is not indexed: that is "no data", returned as an empty
// non-nil result. Any other failure returns nil and an error.
func (c *ShodanInternetDBClient) CheckIP(ctx context.Context, ip string) (*entity.ShodanData, error) {
	var resp ShodanInternetDBResponse
	err := getJSON(ctx, c.httpClient, shodanProvider, c.baseURL+url.PathEscape(ip), map[string]string{
		"User-Agent": osintUserAgent,
	}, &resp)
	if IsNotFound(err) {
		return entity.EmptyShodanData(), nil
	}
	if err != nil {
		return nil, err
	}

	return resp.normalize(), nil
}

// normalize replaces missing lists with empty ones
func (r *ShodanInternetDBResponse) normalize() *entity.ShodanData {
	data := entity.EmptyShodanData()
	if r.Ports != nil {
		data.Ports = r.Ports
	}
	if r.Vulns != nil {
		data.Vulns = r.Vulns
	}
	if r.CPEs != nil {
		data.CPEs = r.CPEs
	}
	if r.Hostnames != nil {
		data.Hostnames = r.Hostnames
	}
	if r.Tags != nil {
		data.Tags = r.Tags
	}
	return data
}
