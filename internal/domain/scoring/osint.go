package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ipflix/ipflix/internal/entity"
)

// OSINT weights and caps
const (
	PortPoints       = 5
	PortCap          = 30
	VulnPoints       = 15
	VulnCap          = 40
	MaliciousTagPts  = 20
	AbuseFactor      = 0.3
	ReportCap        = 20
	HighAbuseConf    = 50
	ManyReports      = 10
	TopCategoryCount = 3
)

// maliciousTagMarkers are matched case-insensitively as substrings of Shodan tags
var maliciousTagMarkers = []string{"malware", "compromised", "honeypot", "scanner"}

// NoIssuesRecommendation is appended when the score is 0
const NoIssuesRecommendation = "No security issues detected in public databases"

// OSINTScore is the outcome of ScoreOSINT
type OSINTScore struct {
	Score           int
	Level           entity.RiskLevel
	Recommendations []string
}

// ScoreOSINT combines Shodan exposure and AbuseIPDB reports into one risk
// score. A nil source contributes nothing.
func ScoreOSINT(shodan *entity.ShodanData, abuse *entity.AbuseIPDBData) OSINTScore {
	score := 0.0
	recs := []string{}

	if shodan != nil {
		score += float64(PortContribution(len(shodan.Ports)))
		if len(shodan.Ports) > 0 {
			recs = append(recs, "Close unnecessary ports: "+joinPorts(shodan.Ports))
		}

		score += float64(VulnContribution(len(shodan.Vulns)))
		if len(shodan.Vulns) > 0 {
			recs = append(recs, fmt.Sprintf("Patch critical vulnerabilities: %d CVEs found", len(shodan.Vulns)))
		}

		malicious := MaliciousTags(shodan.Tags)
		if len(malicious) > 0 {
			score += float64(MaliciousTagPts * len(malicious))
			recs = append(recs, "Address security tags: "+strings.Join(malicious, ", "))
		}
	}

	if abuse != nil {
		score += float64(abuse.AbuseConfidenceScore) * AbuseFactor
		if abuse.AbuseConfidenceScore > HighAbuseConf {
			recs = append(recs, "IP has high abuse confidence score - likely malicious")
		}

		score += float64(min(abuse.TotalReports, ReportCap))
		if abuse.TotalReports > ManyReports {
			recs = append(recs, fmt.Sprintf("IP reported %d times for abuse", abuse.TotalReports))
		}

		if len(abuse.CategoryNames) > 0 {
			top := abuse.CategoryNames[:min(len(abuse.CategoryNames), TopCategoryCount)]
			recs = append(recs, "Attack types: "+strings.Join(top, ", "))
		}
	}

	final := clampRound(score)
	if final == 0 {
		recs = append(recs, NoIssuesRecommendation)
	}

	return OSINTScore{
		Score:           final,
		Level:           RiskLevelFor(final),
		Recommendations: recs,
	}
}

// PortContribution is min(openPorts*5, 30).
func PortContribution(openPorts int) int {
	return min(openPorts*PortPoints, PortCap)
}

// VulnContribution is min(vulns*15, 40).
func VulnContribution(vulns int) int {
	return min(vulns*VulnPoints, VulnCap)
}

// MaliciousTags returns the tags that contain a malicious marker, in input order.
func MaliciousTags(tags []string) []string {
	var found []string
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, marker := range maliciousTagMarkers {
			if strings.Contains(lower, marker) {
				found = append(found, tag)
				break
			}
		}
	}
	return found
}

func joinPorts(ports []int) string {
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
