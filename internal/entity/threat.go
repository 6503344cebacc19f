package entity

// RiskLevel is the five step ordinal shared by threat and OSINT scoring
type RiskLevel string

// Risk level constants, ordered Safe < Low < Medium < High < Critical
const (
	RiskSafe     RiskLevel = "Safe"
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Score thresholds. A score of exactly 0 is Safe, anything below
// LowUpperBound is Low, and so on.
const (
	MaxScore         = 100
	LowUpperBound    = 25
	MediumUpperBound = 50
	HighUpperBound   = 75
)

// Rank returns the ordinal position of the level (Safe = 0).
func (l RiskLevel) Rank() int {
	switch l {
	case RiskSafe:
		return 0
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return -1
	}
}

// ThreatIntelligence is the scored reputation of an IP
type ThreatIntelligence struct {
	ThreatScore     int       `json:"threatScore" yaml:"threatScore"`
	ThreatLevel     RiskLevel `json:"threatLevel" yaml:"threatLevel"`
	IsVPN           bool      `json:"isVpn" yaml:"isVpn"`
	IsProxy         bool      `json:"isProxy" yaml:"isProxy"`
	IsTor           bool      `json:"isTor" yaml:"isTor"`
	IsRelay         bool      `json:"isRelay" yaml:"isRelay"`
	IsHosting       bool      `json:"isHosting" yaml:"isHosting"`
	IsCloudProvider bool      `json:"isCloudProvider" yaml:"isCloudProvider"`
	AbuseScore      float64   `json:"abuseScore" yaml:"abuseScore"`
	IsBot           bool      `json:"isBot" yaml:"isBot"`
	CompanyName     string    `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	CompanyDomain   string    `json:"companyDomain,omitempty" yaml:"companyDomain,omitempty"`
	CompanyType     string    `json:"companyType,omitempty" yaml:"companyType,omitempty"`
	UsageType       string    `json:"usageType" yaml:"usageType"`
	Risks           []string  `json:"risks" yaml:"risks"`
}

// PrivateThreatIntelligence is the zero-risk sentinel for private IPs.
func PrivateThreatIntelligence() *ThreatIntelligence {
	return &ThreatIntelligence{
		ThreatScore: 0,
		ThreatLevel: RiskSafe,
		UsageType:   "private",
		Risks:       []string{},
	}
}

// ASNDetails describes the autonomous system announcing an IP
type ASNDetails struct {
	ASN     string `json:"asn" yaml:"asn"`
	Name    string `json:"name" yaml:"name"`
	Domain  string `json:"domain" yaml:"domain"`
	Route   string `json:"route" yaml:"route"`
	Type    string `json:"type" yaml:"type"`
	Country string `json:"country" yaml:"country"`
}

// PrivateASNDetails is the sentinel for private IPs.
func PrivateASNDetails() *ASNDetails {
	return &ASNDetails{
		ASN:     NotAvailable,
		Name:    PrivateNetwork,
		Domain:  "localhost",
		Route:   "Private",
		Type:    "private",
		Country: NotAvailable,
	}
}

// ThreatReport is the body of GET /api/ip/threat. Either half may be nil
// when its upstream lookup failed.
type ThreatReport struct {
	Threat *ThreatIntelligence `json:"threat" yaml:"threat"`
	ASN    *ASNDetails         `json:"asn" yaml:"asn"`
}
