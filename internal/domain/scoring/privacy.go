package scoring

import (
	"fmt"

	"github.com/ipflix/ipflix/internal/entity"
)

// Privacy deductions from a starting score of 100
const (
	PrivacyStartScore        = 100
	PrivacyCanvasPenalty     = 15
	PrivacyWebGLPenalty      = 15
	PrivacyFontsPenalty      = 10
	PrivacyDNTPenalty        = 5
	PrivacyAdBlockPenalty    = 10
	PrivacyThirdPartyPenalty = 20
	PrivacyWebRTCPenalty     = 15
	PrivacyCookiesPenalty    = 10

	// FontThreshold and CookieThreshold are exclusive lower bounds
	FontThreshold   = 10
	CookieThreshold = 20
)

// PrivacyScore is the outcome of ScorePrivacy
type PrivacyScore struct {
	Score           int
	Level           entity.PrivacyLevel
	Risks           []string
	Recommendations []string
}

// ScorePrivacy deducts from 100 for every exposure found in the audit.
// Each deduction adds exactly one risk and one recommendation.
func ScorePrivacy(audit *entity.PrivacyAuditResult) PrivacyScore {
	score := PrivacyStartScore
	risks := []string{}
	recs := []string{}

	deduct := func(points int, risk, rec string) {
		score -= points
		risks = append(risks, risk)
		recs = append(recs, rec)
	}

	if artifactExposed(audit.Fingerprint.Canvas) {
		deduct(PrivacyCanvasPenalty,
			"Canvas fingerprinting is possible",
			"Use browser extensions that block canvas fingerprinting")
	}
	if artifactExposed(audit.Fingerprint.WebGL) {
		deduct(PrivacyWebGLPenalty,
			"WebGL fingerprinting exposes GPU information",
			"Disable WebGL or use privacy-focused browsers")
	}
	if n := len(audit.Fingerprint.Fonts); n > FontThreshold {
		deduct(PrivacyFontsPenalty,
			fmt.Sprintf("%d fonts detected - unique fingerprint", n),
			"Reduce installed fonts or use font blocking extensions")
	}
	if dnt := audit.Privacy.DoNotTrack; dnt == nil || *dnt == "0" {
		deduct(PrivacyDNTPenalty,
			"Do Not Track is not enabled",
			"Enable Do Not Track in browser settings")
	}
	if isFalse(audit.Privacy.AdBlockerDetected) {
		deduct(PrivacyAdBlockPenalty,
			"No ad blocker detected",
			"Install an ad blocker like uBlock Origin")
	}
	if isFalse(audit.Privacy.ThirdPartyCookiesBlocked) {
		deduct(PrivacyThirdPartyPenalty,
			"Third-party cookies are enabled",
			"Block third-party cookies in browser settings")
	}
	if len(audit.Network.WebRTCIPs) > 0 {
		deduct(PrivacyWebRTCPenalty,
			"WebRTC is leaking local IP addresses",
			"Disable WebRTC or use extensions to prevent IP leaks")
	}
	if n := len(audit.Storage.Cookies); n > CookieThreshold {
		deduct(PrivacyCookiesPenalty,
			fmt.Sprintf("%d cookies stored", n),
			"Regularly clear cookies and browsing data")
	}

	score = clamp(score)
	return PrivacyScore{
		Score:           score,
		Level:           PrivacyLevelFor(score),
		Risks:           risks,
		Recommendations: recs,
	}
}

// artifactExposed reports whether a collector produced a usable digest
func artifactExposed(v string) bool {
	return v != "" && v != entity.ArtifactBlocked && v != entity.ArtifactUnavailable
}

// isFalse is true only for an explicit false; unknown does not count
func isFalse(b *bool) bool {
	return b != nil && !*b
}
