// Package privacy assembles a browser privacy audit and attaches its score.
package privacy

import (
	"github.com/ipflix/ipflix/internal/domain/scoring"
	"github.com/ipflix/ipflix/internal/entity"
)

// Finalize normalizes the collected audit in place and fills in the privacy
// score, level, risks and recommendations. It returns the same audit.
func Finalize(audit *entity.PrivacyAuditResult) *entity.PrivacyAuditResult {
	normalize(audit)

	res := scoring.ScorePrivacy(audit)
	audit.PrivacyScore = res.Score
	audit.PrivacyLevel = res.Level
	audit.Risks = res.Risks
	audit.Recommendations = res.Recommendations
	return audit
}

// normalize replaces nil collections with empty ones so the audit always
// serializes with arrays, and drops cookies whose name could not be read.
func normalize(a *entity.PrivacyAuditResult) {
	if a.Fingerprint.Fonts == nil {
		a.Fingerprint.Fonts = []string{}
	}
	if a.Fingerprint.Plugins == nil {
		a.Fingerprint.Plugins = []string{}
	}
	if a.Network.WebRTCIPs == nil {
		a.Network.WebRTCIPs = []string{}
	}
	if a.Storage.IndexedDB == nil {
		a.Storage.IndexedDB = []string{}
	}

	cookies := make([]entity.Cookie, 0, len(a.Storage.Cookies))
	for _, c := range a.Storage.Cookies {
		if c.Name == "" || c.Name == "unknown" {
			continue
		}
		cookies = append(cookies, c)
	}
	a.Storage.Cookies = cookies
}
