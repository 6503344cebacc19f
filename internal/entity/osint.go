package entity

// ShodanData is the exposed-service view of an IP from Shodan InternetDB
type ShodanData struct {
	Ports     []int    `json:"ports" yaml:"ports"`
	Vulns     []string `json:"vulns" yaml:"vulns"`
	CPEs      []string `json:"cpes" yaml:"cpes"`
	Hostnames []string `json:"hostnames" yaml:"hostnames"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// EmptyShodanData means "no data": non-nil with every list empty.
func EmptyShodanData() *ShodanData {
	return &ShodanData{
		Ports:     []int{},
		Vulns:     []string{},
		CPEs:      []string{},
		Hostnames: []string{},
		Tags:      []string{},
	}
}

// AbuseIPDBData is the abuse-report view of an IP
type AbuseIPDBData struct {
	AbuseConfidenceScore int      `json:"abuseConfidenceScore" yaml:"abuseConfidenceScore"`
	TotalReports         int      `json:"totalReports" yaml:"totalReports"`
	NumDistinctUsers     int      `json:"numDistinctUsers" yaml:"numDistinctUsers"`
	LastReportedAt       *string  `json:"lastReportedAt" yaml:"lastReportedAt"`
	UsageType            string   `json:"usageType" yaml:"usageType"`
	ISP                  string   `json:"isp" yaml:"isp"`
	Domain               string   `json:"domain" yaml:"domain"`
	CountryCode          string   `json:"countryCode" yaml:"countryCode"`
	IsWhitelisted        bool     `json:"isWhitelisted" yaml:"isWhitelisted"`
	Categories           []int    `json:"categories" yaml:"categories"`
	CategoryNames        []string `json:"categoryNames" yaml:"categoryNames"`
}

// PrivateAbuseIPDBData is the sentinel for private IPs.
func PrivateAbuseIPDBData() *AbuseIPDBData {
	return &AbuseIPDBData{
		UsageType:     "Private",
		ISP:           PrivateNetwork,
		Domain:        "localhost",
		CountryCode:   UnknownCountryCode,
		IsWhitelisted: true,
		Categories:    []int{},
		CategoryNames: []string{},
	}
}

// OSINTResult is the body of GET /api/osint. A nil Shodan means the lookup
// failed; a nil AbuseIPDB means it failed or is not configured.
type OSINTResult struct {
	Shodan          *ShodanData    `json:"shodan" yaml:"shodan"`
	AbuseIPDB       *AbuseIPDBData `json:"abuseipdb" yaml:"abuseipdb"`
	RiskScore       int            `json:"riskScore" yaml:"riskScore"`
	RiskLevel       RiskLevel      `json:"riskLevel" yaml:"riskLevel"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
}
