package geolocation

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
)

// DefaultIPAPICoBaseURL is the ipapi.co endpoint (free tier: 1000 requests/day)
const DefaultIPAPICoBaseURL = "https://ipapi.co"

// IPAPICoClient queries ipapi.co. It is the primary geolocation provider and
// the source of network ownership details.
type IPAPICoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPAPICoClient creates a new ipapi.co client
func NewIPAPICoClient(baseURL string, httpClient *http.Client) *IPAPICoClient {
	return &IPAPICoClient{
		baseURL:    strings.TrimRight(orDefault(baseURL, DefaultIPAPICoBaseURL), "/"),
		httpClient: defaultClient(httpClient),
	}
}

// ipapiCoResponse represents the response from ipapi.co
type ipapiCoResponse struct {
	Error          bool    `json:"error"`
	Reason         string  `json:"reason"`
	CountryName    string  `json:"country_name"`
	CountryCode    string  `json:"country_code"`
	City           string  `json:"city"`
	Region         string  `json:"region"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Timezone       string  `json:"timezone"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	Org            string  `json:"org"`
	ASN            string  `json:"asn"`
	Hostname       string  `json:"hostname"`
}

// Name returns the provider name
func (c *IPAPICoClient) Name() string {
	return "ipapi.co"
}

func (c *IPAPICoClient) lookup(ctx context.Context, ip string) (*ipapiCoResponse, error) {
	var resp ipapiCoResponse
	if err := getJSON(ctx, c.httpClient, fmt.Sprintf("%s/%s/json/", c.baseURL, url.PathEscape(ip)), &resp); err != nil {
		return nil, fmt.Errorf("ipapi.co: %w", err)
	}
	if resp.Error {
		return nil, fmt.Errorf("ipapi.co: %s", orDefault(resp.Reason, "API error"))
	}
	return &resp, nil
}

// Locate implements Strategy
func (c *IPAPICoClient) Locate(ctx context.Context, ip string) (*entity.GeoLocation, error) {
	resp, err := c.lookup(ctx, ip)
	if err != nil {
		return nil, err
	}

	return &entity.GeoLocation{
		Country:        orDefault(resp.CountryName, entity.UnknownValue),
		CountryCode:    orDefault(resp.CountryCode, entity.UnknownCountryCode),
		City:           orDefault(resp.City, entity.UnknownValue),
		Region:         orDefault(resp.Region, entity.UnknownValue),
		Latitude:       resp.Latitude,
		Longitude:      resp.Longitude,
		Timezone:       orDefault(resp.Timezone, entity.DefaultTimezone),
		Currency:       orDefault(resp.Currency, "USD"),
		CurrencySymbol: orDefault(resp.CurrencySymbol, "$"),
	}, nil
}

// NetworkDetails returns the network owner of ip. Missing fields are
// "Unknown"; any failure is returned so the caller can degrade.
func (c *IPAPICoClient) NetworkDetails(ctx context.Context, ip string) (*entity.NetworkDetails, error) {
	resp, err := c.lookup(ctx, ip)
	if err != nil {
		return nil, err
	}

	org := orDefault(resp.Org, entity.UnknownValue)
	return &entity.NetworkDetails{
		ISP:      org,
		Org:      org,
		ASN:      orDefault(resp.ASN, entity.UnknownValue),
		Hostname: orDefault(resp.Hostname, entity.UnknownValue),
	}, nil
}
