package threatintel

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ipflix/ipflix/internal/domain/scoring"
	"github.com/ipflix/ipflix/internal/entity"
)

const (
	ipapiISProvider       = "ipapi.is"
	DefaultIPAPIISBaseURL = "https://api.ipapi.is"
	userAgent             = "IPFlix/1.0"
)

// IPAPIISClient queries ipapi.is for threat flags and ASN metadata.
// No key is required for basic usage.
type IPAPIISClient struct {
	baseURL    string
	httpClient *http.Client
}

// IPAPIISConfig holds ipapi.is client configuration
type IPAPIISConfig struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewIPAPIISClient creates a new ipapi.is client
func NewIPAPIISClient(cfg IPAPIISConfig) *IPAPIISClient {
	return &IPAPIISClient{
		baseURL:    strings.TrimRight(orDefault(cfg.BaseURL, DefaultIPAPIISBaseURL), "/"),
		httpClient: defaultClient(cfg.HTTPClient),
	}
}

// IPAPIISResponse is the subset of the ipapi.is payload we consume
type IPAPIISResponse struct {
	IsVPN        bool             `json:"is_vpn"`
	IsProxy      bool             `json:"is_proxy"`
	IsTor        bool             `json:"is_tor"`
	IsRelay      bool             `json:"is_relay"`
	IsHosting    bool             `json:"is_hosting"`
	IsDatacenter bool             `json:"is_datacenter"`
	IsCloud      bool             `json:"is_cloud"`
	IsBot        bool             `json:"is_bot"`
	IsCrawler    bool             `json:"is_crawler"`
	AbuseScore   flexFloat        `json:"abuse_score"`
	Company      *IPAPIISCompany  `json:"company"`
	ASN          *IPAPIISASN      `json:"asn"`
	Location     *IPAPIISLocation `json:"location"`
}

// IPAPIISCompany is the organisation owning the address block
type IPAPIISCompany struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Type   string `json:"type"`
}

// IPAPIISASN is the announcing autonomous system
type IPAPIISASN struct {
	ASN    flexString `json:"asn"`
	Org    string     `json:"org"`
	Name   string     `json:"name"`
	Domain string     `json:"domain"`
	Route  string     `json:"route"`
	Type   string     `json:"type"`
}

// IPAPIISLocation is the coarse location block
type IPAPIISLocation struct {
	CountryCode string `json:"country_code"`
}

// Lookup fetches the raw payload for ip.
func (c *IPAPIISClient) Lookup(ctx context.Context, ip string) (*IPAPIISResponse, error) {
	reqURL := fmt.Sprintf("%s/?q=%s", c.baseURL, url.QueryEscape(ip))

	var resp IPAPIISResponse
	err := getJSON(ctx, c.httpClient, ipapiISProvider, reqURL, map[string]string{
		"User-Agent": userAgent,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ThreatIntelligence looks ip up and scores it.
func (c *IPAPIISClient) ThreatIntelligence(ctx context.Context, ip string) (*entity.ThreatIntelligence, error) {
	resp, err := c.Lookup(ctx, ip)
	if err != nil {
		return nil, err
	}
	return resp.ThreatIntelligence(), nil
}

// ASNDetails looks up the ASN block of ip.
func (c *IPAPIISClient) ASNDetails(ctx context.Context, ip string) (*entity.ASNDetails, error) {
	resp, err := c.Lookup(ctx, ip)
	if err != nil {
		return nil, err
	}
	return resp.ASNDetails(), nil
}

// GetProviderName returns the provider name
func (c *IPAPIISClient) GetProviderName() string {
	return ipapiISProvider
}

// IsConfigured returns true (no key required)
func (c *IPAPIISClient) IsConfigured() bool {
	return true
}

// Signals normalizes the payload into scorer input
func (r *IPAPIISResponse) Signals() scoring.ThreatSignals {
	return scoring.ThreatSignals{
		IsVPN:      r.IsVPN,
		IsProxy:    r.IsProxy,
		IsTor:      r.IsTor,
		IsRelay:    r.IsRelay,
		IsHosting:  r.IsHosting || r.IsDatacenter,
		IsCloud:    r.IsCloud,
		IsBot:      r.IsBot || r.IsCrawler,
		AbuseScore: float64(r.AbuseScore),
	}
}

// ThreatIntelligence scores the payload
func (r *IPAPIISResponse) ThreatIntelligence() *entity.ThreatIntelligence {
	signals := r.Signals()
	score := scoring.ScoreThreat(signals)

	ti := &entity.ThreatIntelligence{
		ThreatScore:     score.Score,
		ThreatLevel:     score.Level,
		IsVPN:           signals.IsVPN,
		IsProxy:         signals.IsProxy,
		IsTor:           signals.IsTor,
		IsRelay:         signals.IsRelay,
		IsHosting:       signals.IsHosting,
		IsCloudProvider: signals.IsCloud,
		AbuseScore:      signals.AbuseScore,
		IsBot:           signals.IsBot,
		UsageType:       r.UsageType(),
		Risks:           score.Risks,
	}

	if r.Company != nil {
		ti.CompanyName = r.Company.Name
		ti.CompanyDomain = r.Company.Domain
		ti.CompanyType = r.Company.Type
	}
	if r.ASN != nil {
		ti.CompanyName = orDefault(ti.CompanyName, r.ASN.Org)
		ti.CompanyDomain = orDefault(ti.CompanyDomain, r.ASN.Domain)
	}

	return ti
}

// UsageType derives the usage class. Rules are evaluated in order.
func (r *IPAPIISResponse) UsageType() string {
	companyType := ""
	if r.Company != nil {
		companyType = r.Company.Type
	}
	asnType := ""
	if r.ASN != nil {
		asnType = r.ASN.Type
	}

	switch {
	case companyType == "education", companyType == "government", companyType == "military":
		return companyType
	case r.IsHosting || r.IsDatacenter:
		return "hosting"
	case r.IsCloud:
		return "cloud"
	case companyType == "business":
		return "business"
	case asnType == "isp":
		return "residential"
	default:
		return "unknown"
	}
}

// ASNDetails extracts the ASN block, defaulting missing fields to Unknown
func (r *IPAPIISResponse) ASNDetails() *entity.ASNDetails {
	asn := r.ASN
	if asn == nil {
		asn = &IPAPIISASN{}
	}
	country := ""
	if r.Location != nil {
		country = r.Location.CountryCode
	}

	return &entity.ASNDetails{
		ASN:     orDefault(string(asn.ASN), entity.UnknownValue),
		Name:    orDefault(orDefault(asn.Org, asn.Name), entity.UnknownValue),
		Domain:  orDefault(asn.Domain, entity.UnknownValue),
		Route:   orDefault(asn.Route, entity.UnknownValue),
		Type:    orDefault(asn.Type, entity.UnknownValue),
		Country: orDefault(country, entity.UnknownValue),
	}
}

// flexString accepts a JSON string or number
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	*s = flexString(b)
	return nil
}

// flexFloat accepts a JSON number or a string starting with a number
// ("0.0039 (Low)"). Non-finite values decode as 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	if i := strings.IndexByte(raw, ' '); i > 0 {
		raw = raw[:i]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
