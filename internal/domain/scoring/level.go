package scoring

import (
	"math"

	"github.com/ipflix/ipflix/internal/entity"
)

// Privacy level thresholds
const (
	PrivacyVeryHighThreshold = 80
	PrivacyHighThreshold     = 60
	PrivacyMediumThreshold   = 40
)

// RiskLevelFor maps a clamped 0-100 score onto the five step risk ordinal.
// 0 is Safe, [1,24] Low, [25,49] Medium, [50,74] High, [75,100] Critical.
func RiskLevelFor(score int) entity.RiskLevel {
	switch {
	case score <= 0:
		return entity.RiskSafe
	case score < entity.LowUpperBound:
		return entity.RiskLow
	case score < entity.MediumUpperBound:
		return entity.RiskMedium
	case score < entity.HighUpperBound:
		return entity.RiskHigh
	default:
		return entity.RiskCritical
	}
}

// PrivacyLevelFor maps a privacy score onto Low, Medium, High or Very High.
func PrivacyLevelFor(score int) entity.PrivacyLevel {
	switch {
	case score >= PrivacyVeryHighThreshold:
		return entity.PrivacyVeryHigh
	case score >= PrivacyHighThreshold:
		return entity.PrivacyHigh
	case score >= PrivacyMediumThreshold:
		return entity.PrivacyMedium
	default:
		return entity.PrivacyLow
	}
}

// clampRound clamps to [0, 100] and rounds half up. NaN scores 0.
func clampRound(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	score = math.Max(0, math.Min(entity.MaxScore, score))
	return int(math.Floor(score + 0.5))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > entity.MaxScore {
		return entity.MaxScore
	}
	return score
}
