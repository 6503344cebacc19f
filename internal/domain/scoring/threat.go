package scoring

import (
	"math"
	"strconv"

	"github.com/ipflix/ipflix/internal/entity"
)

// Threat flag weights
const (
	ThreatWeightVPN     = 30
	ThreatWeightProxy   = 30
	ThreatWeightTor     = 40
	ThreatWeightRelay   = 20
	ThreatWeightHosting = 15
	ThreatWeightCloud   = 10
	ThreatWeightBot     = 25

	// ThreatAbuseFactor scales the upstream 0-100 abuse score
	ThreatAbuseFactor = 0.3
	// HighAbuseThreshold triggers the high-abuse finding when exceeded
	HighAbuseThreshold = 50
)

// ThreatSignals is the provider-independent input of the threat scorer
type ThreatSignals struct {
	IsVPN      bool
	IsProxy    bool
	IsTor      bool
	IsRelay    bool
	IsHosting  bool
	IsCloud    bool
	IsBot      bool
	AbuseScore float64
}

// ThreatScore is the outcome of ScoreThreat
type ThreatScore struct {
	Score int
	Level entity.RiskLevel
	Risks []string
}

// ScoreThreat computes the weighted threat score. Risks are appended in the
// fixed order VPN, Proxy, Tor, Relay, Hosting, Cloud, Bot, high abuse.
func ScoreThreat(s ThreatSignals) ThreatScore {
	score := 0.0
	risks := []string{}

	if s.IsVPN {
		score += ThreatWeightVPN
		risks = append(risks, "VPN detected")
	}
	if s.IsProxy {
		score += ThreatWeightProxy
		risks = append(risks, "Proxy detected")
	}
	if s.IsTor {
		score += ThreatWeightTor
		risks = append(risks, "Tor exit node detected")
	}
	if s.IsRelay {
		score += ThreatWeightRelay
		risks = append(risks, "Network relay detected")
	}
	if s.IsHosting {
		score += ThreatWeightHosting
		risks = append(risks, "Hosting/datacenter IP")
	}
	if s.IsCloud {
		score += ThreatWeightCloud
		risks = append(risks, "Cloud provider IP")
	}
	if s.IsBot {
		score += ThreatWeightBot
		risks = append(risks, "Bot/crawler detected")
	}

	if s.AbuseScore != 0 && !math.IsNaN(s.AbuseScore) {
		score += s.AbuseScore * ThreatAbuseFactor
		if s.AbuseScore > HighAbuseThreshold {
			risks = append(risks, "High abuse score: "+strconv.FormatFloat(s.AbuseScore, 'f', -1, 64))
		}
	}

	final := clampRound(score)
	return ThreatScore{
		Score: final,
		Level: RiskLevelFor(final),
		Risks: risks,
	}
}
