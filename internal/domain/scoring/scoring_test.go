package scoring

import (
	"fmt"
	"math"
	"testing"

	"github.com/ipflix/ipflix/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Levels
// =============================================================================

func TestRiskLevelFor_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  entity.RiskLevel
	}{
		{0, entity.RiskSafe},
		{1, entity.RiskLow},
		{24, entity.RiskLow},
		{25, entity.RiskMedium},
		{49, entity.RiskMedium},
		{50, entity.RiskHigh},
		{74, entity.RiskHigh},
		{75, entity.RiskCritical},
		{100, entity.RiskCritical},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevelFor(tt.score))
		})
	}
}

func TestRiskLevelFor_Monotonic(t *testing.T) {
	prev := RiskLevelFor(0).Rank()
	for s := 1; s <= 100; s++ {
		rank := RiskLevelFor(s).Rank()
		assert.GreaterOrEqual(t, rank, prev, "score %d", s)
		prev = rank
	}
}

func TestPrivacyLevelFor(t *testing.T) {
	assert.Equal(t, entity.PrivacyVeryHigh, PrivacyLevelFor(100))
	assert.Equal(t, entity.PrivacyVeryHigh, PrivacyLevelFor(80))
	assert.Equal(t, entity.PrivacyHigh, PrivacyLevelFor(79))
	assert.Equal(t, entity.PrivacyHigh, PrivacyLevelFor(60))
	assert.Equal(t, entity.PrivacyMedium, PrivacyLevelFor(59))
	assert.Equal(t, entity.PrivacyMedium, PrivacyLevelFor(40))
	assert.Equal(t, entity.PrivacyLow, PrivacyLevelFor(39))
	assert.Equal(t, entity.PrivacyLow, PrivacyLevelFor(0))
}

func TestClampRound(t *testing.T) {
	assert.Equal(t, 0, clampRound(-3))
	assert.Equal(t, 25, clampRound(24.5))
	assert.Equal(t, 24, clampRound(24.49))
	assert.Equal(t, 100, clampRound(180))
	assert.Equal(t, 100, clampRound(1e20))
	assert.Equal(t, 100, clampRound(math.Inf(1)))
	assert.Equal(t, 0, clampRound(math.Inf(-1)))
	assert.Equal(t, 0, clampRound(math.NaN()))
}

// =============================================================================
// Threat
// =============================================================================

func TestScoreThreat_NoSignals(t *testing.T) {
	got := ScoreThreat(ThreatSignals{})
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, entity.RiskSafe, got.Level)
	assert.NotNil(t, got.Risks)
	assert.Empty(t, got.Risks)
}

func TestScoreThreat_RiskOrder(t *testing.T) {
	got := ScoreThreat(ThreatSignals{
		IsVPN: true, IsProxy: true, IsTor: true, IsRelay: true,
		IsHosting: true, IsCloud: true, IsBot: true, AbuseScore: 80,
	})

	assert.Equal(t, 100, got.Score)
	assert.Equal(t, entity.RiskCritical, got.Level)
	assert.Equal(t, []string{
		"VPN detected",
		"Proxy detected",
		"Tor exit node detected",
		"Network relay detected",
		"Hosting/datacenter IP",
		"Cloud provider IP",
		"Bot/crawler detected",
		"High abuse score: 80",
	}, got.Risks)
}

func TestScoreThreat_AbuseContribution(t *testing.T) {
	// 30 + 62.5*0.3 = 48.75 -> 49
	got := ScoreThreat(ThreatSignals{IsVPN: true, AbuseScore: 62.5})
	assert.Equal(t, 49, got.Score)
	assert.Equal(t, entity.RiskMedium, got.Level)
	assert.Contains(t, got.Risks, "High abuse score: 62.5")

	// at the threshold no finding is added
	got = ScoreThreat(ThreatSignals{AbuseScore: 50})
	assert.Equal(t, 15, got.Score)
	assert.Empty(t, got.Risks)
}

func TestScoreThreat_ExtremeAbuseScore(t *testing.T) {
	for _, abuse := range []float64{1e20, math.Inf(1)} {
		got := ScoreThreat(ThreatSignals{IsTor: true, AbuseScore: abuse})
		assert.Equal(t, 100, got.Score, "abuse %v", abuse)
		assert.Equal(t, entity.RiskCritical, got.Level, "abuse %v", abuse)
	}

	got := ScoreThreat(ThreatSignals{IsTor: true, AbuseScore: math.NaN()})
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, []string{"Tor exit node detected"}, got.Risks)
}

func TestScoreThreat_Monotonic(t *testing.T) {
	setters := []func(*ThreatSignals){
		func(s *ThreatSignals) { s.IsVPN = true },
		func(s *ThreatSignals) { s.IsProxy = true },
		func(s *ThreatSignals) { s.IsTor = true },
		func(s *ThreatSignals) { s.IsRelay = true },
		func(s *ThreatSignals) { s.IsHosting = true },
		func(s *ThreatSignals) { s.IsCloud = true },
		func(s *ThreatSignals) { s.IsBot = true },
	}

	for _, abuse := range []float64{0, 20, 90} {
		signals := ThreatSignals{AbuseScore: abuse}
		prev := ScoreThreat(signals).Score
		for _, set := range setters {
			set(&signals)
			score := ScoreThreat(signals).Score
			assert.GreaterOrEqual(t, score, prev)
			assert.LessOrEqual(t, score, 100)
			prev = score
		}
	}
}

// =============================================================================
// OSINT
// =============================================================================

func TestPortContribution_Capped(t *testing.T) {
	assert.Equal(t, 0, PortContribution(0))
	assert.Equal(t, 25, PortContribution(5))
	assert.Equal(t, 30, PortContribution(6))
	assert.Equal(t, 30, PortContribution(7))
}

func TestVulnContribution_Capped(t *testing.T) {
	assert.Equal(t, 15, VulnContribution(1))
	assert.Equal(t, 30, VulnContribution(2))
	assert.Equal(t, 40, VulnContribution(3))
}

func TestScoreOSINT_SevenPorts(t *testing.T) {
	shodan := entity.EmptyShodanData()
	shodan.Ports = []int{21, 22, 23, 25, 80, 443, 8080}

	got := ScoreOSINT(shodan, nil)
	assert.Equal(t, 30, got.Score)
	assert.Equal(t, entity.RiskMedium, got.Level)
	assert.Equal(t, []string{"Close unnecessary ports: 21, 22, 23, 25, 80, 443, 8080"}, got.Recommendations)
}

func TestScoreOSINT_ThreeCVEs(t *testing.T) {
	shodan := entity.EmptyShodanData()
	shodan.Vulns = []string{"CVE-2021-44228", "CVE-2022-22965", "CVE-2023-4966"}

	got := ScoreOSINT(shodan, nil)
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, []string{"Patch critical vulnerabilities: 3 CVEs found"}, got.Recommendations)
}

func TestScoreOSINT_MaliciousTags(t *testing.T) {
	shodan := entity.EmptyShodanData()
	shodan.Tags = []string{"cloud", "Honeypot", "self-signed", "known-scanner"}

	got := ScoreOSINT(shodan, nil)
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, []string{"Address security tags: Honeypot, known-scanner"}, got.Recommendations)
}

func TestScoreOSINT_Abuse(t *testing.T) {
	abuse := &entity.AbuseIPDBData{
		AbuseConfidenceScore: 100,
		TotalReports:         57,
		CategoryNames:        []string{"SSH", "Brute-Force", "Port Scan", "Hacking"},
	}

	got := ScoreOSINT(nil, abuse)
	// 100*0.3 + min(57, 20)
	assert.Equal(t, 50, got.Score)
	assert.Equal(t, entity.RiskHigh, got.Level)
	assert.Equal(t, []string{
		"IP has high abuse confidence score - likely malicious",
		"IP reported 57 times for abuse",
		"Attack types: SSH, Brute-Force, Port Scan",
	}, got.Recommendations)
}

func TestScoreOSINT_NoDataVersusOutage(t *testing.T) {
	noData := ScoreOSINT(entity.EmptyShodanData(), nil)
	outage := ScoreOSINT(nil, nil)

	for _, got := range []OSINTScore{noData, outage} {
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, entity.RiskSafe, got.Level)
		assert.Equal(t, []string{NoIssuesRecommendation}, got.Recommendations)
	}
}

func TestScoreOSINT_Capped(t *testing.T) {
	shodan := &entity.ShodanData{
		Ports: []int{1, 2, 3, 4, 5, 6, 7, 8},
		Vulns: []string{"a", "b", "c", "d"},
		Tags:  []string{"malware", "compromised"},
	}
	abuse := &entity.AbuseIPDBData{AbuseConfidenceScore: 100, TotalReports: 1000}

	got := ScoreOSINT(shodan, abuse)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, entity.RiskCritical, got.Level)
}

// =============================================================================
// Privacy
// =============================================================================

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func fonts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Font %d", i)
	}
	return out
}

func TestScorePrivacy_LeakyBrowser(t *testing.T) {
	audit := &entity.PrivacyAuditResult{
		Fingerprint: entity.FingerprintArtifacts{Canvas: "a1b2c3", WebGL: "d4e5f6"},
		Privacy: entity.PrivacySettings{
			DoNotTrack:               strPtr("0"),
			AdBlockerDetected:        boolPtr(false),
			ThirdPartyCookiesBlocked: boolPtr(false),
		},
		Network: entity.NetworkInfo{WebRTCIPs: []string{"192.168.1.20"}},
	}

	got := ScorePrivacy(audit)
	assert.Equal(t, 20, got.Score)
	assert.Equal(t, entity.PrivacyLow, got.Level)
	require.Len(t, got.Risks, 6)
	assert.Len(t, got.Recommendations, 6)
	assert.Equal(t, "Canvas fingerprinting is possible", got.Risks[0])
	assert.Equal(t, "WebRTC is leaking local IP addresses", got.Risks[5])
}

func TestScorePrivacy_HardenedBrowser(t *testing.T) {
	audit := &entity.PrivacyAuditResult{
		Fingerprint: entity.FingerprintArtifacts{
			Canvas: entity.ArtifactBlocked,
			WebGL:  entity.ArtifactUnavailable,
			Fonts:  fonts(10),
		},
		Privacy: entity.PrivacySettings{
			DoNotTrack:               strPtr("1"),
			AdBlockerDetected:        boolPtr(true),
			ThirdPartyCookiesBlocked: boolPtr(true),
		},
	}

	got := ScorePrivacy(audit)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, entity.PrivacyVeryHigh, got.Level)
	assert.Empty(t, got.Risks)
	assert.Empty(t, got.Recommendations)
}

func TestScorePrivacy_UnknownSettingsDoNotDeduct(t *testing.T) {
	// nil DNT counts as off, nil ad blocker and cookie state do not
	got := ScorePrivacy(&entity.PrivacyAuditResult{})
	assert.Equal(t, 95, got.Score)
	assert.Equal(t, []string{"Do Not Track is not enabled"}, got.Risks)
}

func TestScorePrivacy_CountFindings(t *testing.T) {
	cookies := make([]entity.Cookie, 21)
	audit := &entity.PrivacyAuditResult{
		Fingerprint: entity.FingerprintArtifacts{Fonts: fonts(42)},
		Privacy:     entity.PrivacySettings{DoNotTrack: strPtr("1")},
		Storage:     entity.StorageInfo{Cookies: cookies},
	}

	got := ScorePrivacy(audit)
	assert.Equal(t, 80, got.Score)
	assert.Equal(t, []string{"42 fonts detected - unique fingerprint", "21 cookies stored"}, got.Risks)
}

func TestScorePrivacy_EveryDeduction(t *testing.T) {
	audit := &entity.PrivacyAuditResult{
		Fingerprint: entity.FingerprintArtifacts{Canvas: "x", WebGL: "y", Fonts: fonts(11)},
		Privacy: entity.PrivacySettings{
			AdBlockerDetected:        boolPtr(false),
			ThirdPartyCookiesBlocked: boolPtr(false),
		},
		Network: entity.NetworkInfo{WebRTCIPs: []string{"10.0.0.2"}},
		Storage: entity.StorageInfo{Cookies: make([]entity.Cookie, 30)},
	}

	got := ScorePrivacy(audit)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, entity.PrivacyLow, got.Level)
	assert.Len(t, got.Risks, 8)
}

// =============================================================================
// Trust and bot
// =============================================================================

func TestTrustScore(t *testing.T) {
	assert.Equal(t, 100, TrustScore(0))
	assert.Equal(t, 70, TrustScore(3))
	assert.Equal(t, 0, TrustScore(10))
	assert.Equal(t, 0, TrustScore(11))
}

func TestTrustVerdict(t *testing.T) {
	assert.Equal(t, "Highly trustworthy browser", TrustVerdict(100))
	assert.Equal(t, "Highly trustworthy browser", TrustVerdict(80))
	assert.Equal(t, "Generally trustworthy", TrustVerdict(70))
	assert.Equal(t, "Moderate trust level", TrustVerdict(40))
	assert.Equal(t, "Low trust - tampering detected", TrustVerdict(20))
	assert.Equal(t, "Very low trust - likely spoofed", TrustVerdict(10))
}

func TestScoreBot(t *testing.T) {
	got := ScoreBot(nil)
	assert.False(t, got.IsBot)
	assert.Equal(t, 0, got.Score)
	assert.Empty(t, got.Indicators)

	got = ScoreBot([]BotIndicator{
		{Name: "WebDriver detected", Weight: BotWeightWebDriver},
		{Name: "No mouse movement detected", Weight: BotWeightNoMouse},
	})
	assert.True(t, got.IsBot)
	assert.Equal(t, 60, got.Score)
	assert.Equal(t, []string{"WebDriver detected", "No mouse movement detected"}, got.Indicators)

	got = ScoreBot([]BotIndicator{
		{Name: "PhantomJS detected", Weight: BotWeightPhantom},
		{Name: "Selenium detected", Weight: BotWeightSelenium},
		{Name: "WebDriver detected", Weight: BotWeightWebDriver},
	})
	assert.Equal(t, 100, got.Score)
}
