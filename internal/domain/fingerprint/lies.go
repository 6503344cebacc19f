package fingerprint

import (
	"strings"

	"github.com/ipflix/ipflix/internal/domain/scoring"
	"github.com/ipflix/ipflix/internal/entity"
)

// MinScreenDimension is the smallest plausible screen width or height
const MinScreenDimension = 100

// DetectLies lists the inconsistencies between what the browser claims and
// what it exposes. Details keep a fixed order.
func DetectLies(p LieProbe) []string {
	lies := []string{}
	ua := p.UserAgent

	if strings.Contains(ua, "Chrome") && !p.hasGlobal(GlobalChrome) {
		lies = append(lies, "Claims to be Chrome but window.chrome is missing")
	}
	if strings.Contains(ua, "Safari") && !strings.Contains(ua, "Chrome") && !p.hasGlobal(GlobalSafari) {
		lies = append(lies, "Claims to be Safari but window.safari is missing")
	}

	for _, family := range []struct{ marker, name string }{
		{"Win", "Windows"},
		{"Mac", "Mac"},
		{"Linux", "Linux"},
	} {
		if strings.Contains(ua, family.marker) && !strings.Contains(p.Platform, family.marker) {
			lies = append(lies, "User agent claims "+family.name+" but platform disagrees")
		}
	}

	if len(p.Languages) > 0 && p.Language != p.Languages[0] {
		lies = append(lies, "navigator.language differs from navigator.languages[0]")
	}
	if p.ScreenWidth < MinScreenDimension || p.ScreenHeight < MinScreenDimension {
		lies = append(lies, "Suspicious screen dimensions")
	}
	if p.TimezoneName == "" || p.TimezoneName == entity.DefaultTimezone {
		lies = append(lies, "Timezone set to UTC (common in automation)")
	}
	if p.WebDriver {
		lies = append(lies, "navigator.webdriver is true (automation detected)")
	}
	if p.PluginCount == 0 && !strings.Contains(ua, "Mobile") {
		lies = append(lies, "No plugins detected (unusual for desktop browsers)")
	}
	if p.ConnectionRTT != nil && *p.ConnectionRTT == 0 {
		lies = append(lies, "Network RTT is 0 (suspicious)")
	}

	return lies
}

// LieReport wraps DetectLies with the derived trust score and verdict.
func LieReport(p LieProbe) entity.LieReport {
	details := DetectLies(p)
	trust := scoring.TrustScore(len(details))
	return entity.LieReport{
		Detected:   len(details) > 0,
		Count:      len(details),
		Details:    details,
		TrustScore: trust,
		Verdict:    scoring.TrustVerdict(trust),
	}
}
