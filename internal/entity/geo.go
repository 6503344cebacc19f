package entity

// GeoLocation is the normalized location of an IP, produced by exactly one
// provider of the geolocation chain.
type GeoLocation struct {
	Country        string  `json:"country" yaml:"country"`
	CountryCode    string  `json:"countryCode" yaml:"countryCode"`
	City           string  `json:"city" yaml:"city"`
	Region         string  `json:"region" yaml:"region"`
	Latitude       float64 `json:"latitude" yaml:"latitude"`
	Longitude      float64 `json:"longitude" yaml:"longitude"`
	Timezone       string  `json:"timezone" yaml:"timezone"`
	Currency       string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	CurrencySymbol string  `json:"currencySymbol,omitempty" yaml:"currencySymbol,omitempty"`
	Source         string  `json:"-" yaml:"-"`
}

// Sentinel values used when a field is missing or no provider succeeded
const (
	UnknownValue       = "Unknown"
	UnknownCountryCode = "XX"
	DefaultTimezone    = "UTC"
	NotAvailable       = "N/A"
	PrivateNetwork     = "Private Network"
)

// UnknownGeoLocation is returned to clients when the chain yields nothing.
func UnknownGeoLocation() GeoLocation {
	return GeoLocation{
		Country:     UnknownValue,
		CountryCode: UnknownCountryCode,
		City:        UnknownValue,
		Region:      UnknownValue,
		Timezone:    DefaultTimezone,
	}
}

// NetworkDetails describes the owner of an IP's network
type NetworkDetails struct {
	ISP      string `json:"isp" yaml:"isp"`
	Org      string `json:"org" yaml:"org"`
	ASN      string `json:"asn" yaml:"asn"`
	Hostname string `json:"hostname" yaml:"hostname"`
}

// PrivateNetworkDetails is the sentinel for private or invalid IPs.
func PrivateNetworkDetails() NetworkDetails {
	return NetworkDetails{
		ISP:      PrivateNetwork,
		Org:      PrivateNetwork,
		ASN:      NotAvailable,
		Hostname: "localhost",
	}
}

// UnknownNetworkDetails is used when the upstream lookup fails.
func UnknownNetworkDetails() NetworkDetails {
	return NetworkDetails{
		ISP:      UnknownValue,
		Org:      UnknownValue,
		ASN:      UnknownValue,
		Hostname: UnknownValue,
	}
}

// SecurityInfo is the placeholder security block of the details endpoint.
// Real detection lives in ThreatIntelligence.
type SecurityInfo struct {
	IsVPN   bool `json:"isVpn"`
	IsProxy bool `json:"isProxy"`
	IsTor   bool `json:"isTor"`
}

// NetworkDetailsResponse is the body of GET /api/ip/details
type NetworkDetailsResponse struct {
	NetworkDetails
	Security SecurityInfo `json:"security"`
}

// ClientInfo is the body of GET /api/ip
type ClientInfo struct {
	IP        string `json:"ip"`
	IPVersion string `json:"ipVersion"`
	GeoLocation
	UserAgent string `json:"userAgent"`
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Device    string `json:"device"`
	Timestamp string `json:"timestamp"`
}
