package scoring

// LiePenalty is deducted from the trust score per detected lie
const LiePenalty = 10

// BotThreshold is the minimum accumulated bot score classified as a bot
const BotThreshold = 50

// Bot indicator weights
const (
	BotWeightWebDriver          = 40
	BotWeightPhantom            = 50
	BotWeightSelenium           = 50
	BotWeightHeadlessChrome     = 50
	BotWeightDOMAutomation      = 40
	BotWeightWebDriverProps     = 40
	BotWeightNoMouse            = 20
	BotWeightPermissionMismatch = 15
	BotWeightHeadlessRuntime    = 30
)

// BotIndicator is one automation signal and its weight
type BotIndicator struct {
	Name   string
	Weight int
}

// BotScore is the outcome of ScoreBot
type BotScore struct {
	IsBot      bool
	Score      int
	Indicators []string
}

// TrustScore is max(0, 100 - 10*lies).
func TrustScore(lieCount int) int {
	return clamp(PrivacyStartScore - LiePenalty*lieCount)
}

// TrustVerdict labels a trust score.
func TrustVerdict(score int) string {
	switch {
	case score >= 80:
		return "Highly trustworthy browser"
	case score >= 60:
		return "Generally trustworthy"
	case score >= 40:
		return "Moderate trust level"
	case score >= 20:
		return "Low trust - tampering detected"
	default:
		return "Very low trust - likely spoofed"
	}
}

// ScoreBot sums indicator weights, capped at 100. Indicator names keep their
// input order.
func ScoreBot(indicators []BotIndicator) BotScore {
	total := 0
	names := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		total += ind.Weight
		names = append(names, ind.Name)
	}
	return BotScore{
		IsBot:      total >= BotThreshold,
		Score:      clamp(total),
		Indicators: names,
	}
}
