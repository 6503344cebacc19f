package threatintel

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
)

const (
	abuseIPDBProvider       = "AbuseIPDB"
	DefaultAbuseIPDBBaseURL = "https://api.abuseipdb.com/api/v2"
	abuseIPDBMaxAgeDays     = 90
)

// AbuseIPDBClient handles communication with AbuseIPDB API
type AbuseIPDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// AbuseIPDBConfig holds AbuseIPDB client configuration
type AbuseIPDBConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewAbuseIPDBClient creates a new AbuseIPDB client
func NewAbuseIPDBClient(cfg AbuseIPDBConfig) *AbuseIPDBClient {
	return &AbuseIPDBClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(orDefault(cfg.BaseURL, DefaultAbuseIPDBBaseURL), "/"),
		httpClient: defaultClient(cfg.HTTPClient),
	}
}

// AbuseIPDBResponse represents the API response for IP check
type AbuseIPDBResponse struct {
	Data AbuseIPDBPayload `json:"data"`
}

// AbuseIPDBPayload contains the IP information
type AbuseIPDBPayload struct {
	IPAddress            string            `json:"ipAddress"`
	IsWhitelisted        bool              `json:"isWhitelisted"`
	AbuseConfidenceScore int               `json:"abuseConfidenceScore"`
	CountryCode          string            `json:"countryCode"`
	UsageType            string            `json:"usageType"`
	ISP                  string            `json:"isp"`
	Domain               string            `json:"domain"`
	TotalReports         int               `json:"totalReports"`
	NumDistinctUsers     int               `json:"numDistinctUsers"`
	LastReportedAt       *string           `json:"lastReportedAt"`
	Reports              []AbuseIPDBReport `json:"reports"`
}

// AbuseIPDBReport is one verbose report entry
type AbuseIPDBReport struct {
	Categories []int `json:"categories"`
}

// CheckIP queries AbuseIPDB for IP reputation. Without an API key it
// returns ErrNotConfigured.
func (c *AbuseIPDBClient) CheckIP(ctx context.Context, ip string) (*entity.AbuseIPDBData, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	reqURL := fmt.Sprintf("%s/check?ipAddress=%s&maxAgeInDays=%d&verbose",
		c.baseURL, url.QueryEscape(ip), abuseIPDBMaxAgeDays)

	var apiResp AbuseIPDBResponse
	err := getJSON(ctx, c.httpClient, abuseIPDBProvider, reqURL, map[string]string{
		"Key":    c.apiKey,
		"Accept": "application/json",
	}, &apiResp)
	if err != nil {
		return nil, err
	}

	return apiResp.Data.normalize(), nil
}

// GetProviderName returns the provider name
func (c *AbuseIPDBClient) GetProviderName() string {
	return abuseIPDBProvider
}

// IsConfigured returns true if the client has an API key
func (c *AbuseIPDBClient) IsConfigured() bool {
	return c.apiKey != ""
}

func (p *AbuseIPDBPayload) normalize() *entity.AbuseIPDBData {
	codes := uniqueCategories(p.Reports)
	return &entity.AbuseIPDBData{
		AbuseConfidenceScore: p.AbuseConfidenceScore,
		TotalReports:         p.TotalReports,
		NumDistinctUsers:     p.NumDistinctUsers,
		LastReportedAt:       p.LastReportedAt,
		UsageType:            orDefault(p.UsageType, entity.UnknownValue),
		ISP:                  orDefault(p.ISP, entity.UnknownValue),
		Domain:               orDefault(p.Domain, entity.UnknownValue),
		CountryCode:          orDefault(p.CountryCode, entity.UnknownCountryCode),
		IsWhitelisted:        p.IsWhitelisted,
		Categories:           codes,
		CategoryNames:        CategoryNames(codes),
	}
}

// uniqueCategories flattens report categories keeping first-seen order
func uniqueCategories(reports []AbuseIPDBReport) []int {
	codes := []int{}
	seen := make(map[int]struct{})
	for _, r := range reports {
		for _, c := range r.Categories {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			codes = append(codes, c)
		}
	}
	return codes
}
