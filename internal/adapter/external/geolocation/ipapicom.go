package geolocation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
)

// DefaultIPAPIComBaseURL is ip-api.com (45 requests/minute, no HTTPS on free tier)
const DefaultIPAPIComBaseURL = "http://ip-api.com"

const ipapiComFields = "status,message,country,countryCode,region,regionName,city,lat,lon,timezone"

// IPAPIComClient is the secondary geolocation provider
type IPAPIComClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPAPIComClient creates a new ip-api.com client
func NewIPAPIComClient(baseURL string, httpClient *http.Client) *IPAPIComClient {
	return &IPAPIComClient{
		baseURL:    strings.TrimRight(orDefault(baseURL, DefaultIPAPIComBaseURL), "/"),
		httpClient: defaultClient(httpClient),
	}
}

// ipAPIResponse represents the response from ip-api.com
type ipAPIResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	RegionName  string  `json:"regionName"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
}

// Name returns the provider name
func (c *IPAPIComClient) Name() string {
	return "ip-api.com"
}

// Locate implements Strategy
func (c *IPAPIComClient) Locate(ctx context.Context, ip string) (*entity.GeoLocation, error) {
	reqURL := fmt.Sprintf("%s/json/%s?fields=%s", c.baseURL, url.PathEscape(ip), ipapiComFields)

	var apiResp ipAPIResponse
	if err := getJSON(ctx, c.httpClient, reqURL, &apiResp); err != nil {
		return nil, fmt.Errorf("ip-api.com: %w", err)
	}

	if apiResp.Status == "fail" {
		return nil, fmt.Errorf("ip-api.com: %s", orDefault(apiResp.Message, "API error"))
	}

	return &entity.GeoLocation{
		Country:     orDefault(apiResp.Country, entity.UnknownValue),
		CountryCode: orDefault(apiResp.CountryCode, entity.UnknownCountryCode),
		City:        orDefault(apiResp.City, entity.UnknownValue),
		Region:      orDefault(apiResp.RegionName, entity.UnknownValue),
		Latitude:    apiResp.Lat,
		Longitude:   apiResp.Lon,
		Timezone:    orDefault(apiResp.Timezone, entity.DefaultTimezone),
	}, nil
}
