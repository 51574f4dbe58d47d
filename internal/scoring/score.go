package scoring

import (
	"math"

	"schneelage/server/internal/models"
)

// crowdScores maps the crowd tier to its score contribution. An unknown
// tier (including missing crowd data) contributes the neutral 5.
var crowdScores = map[string]float64{
	"low":       10,
	"medium":    7,
	"high":      3,
	"very_high": 1,
}

// Calculate combines snow depth, new snow, temperature, trend and crowding
// into the composite 0-100 condition score. Pure function; absent upstream
// data arrives here as zero values and still yields a valid score.
func Calculate(depthCm int, newSnow3d, avgTemp3d float64, trendCm int, crowdLevel string) int {
	scoreSnow := math.Min(30, float64(depthCm)/120*30)
	scoreNewSnow := math.Min(25, newSnow3d/10*25)

	var scoreTemp float64
	switch {
	case avgTemp3d < -5:
		scoreTemp = 20
	case avgTemp3d < 0:
		scoreTemp = 15
	case avgTemp3d < 5:
		scoreTemp = 10
	default:
		scoreTemp = 5
	}

	var scoreTrend float64
	switch {
	case trendCm > 10:
		scoreTrend = 15
	case trendCm > 0:
		scoreTrend = 10
	case trendCm > -10:
		scoreTrend = 5
	}

	scoreCrowd, ok := crowdScores[crowdLevel]
	if !ok {
		scoreCrowd = 5
	}

	return int(math.Round(scoreSnow + scoreNewSnow + scoreTemp + scoreTrend + scoreCrowd))
}

// Label returns the qualitative rating for a composite score. Thresholds
// are inclusive.
func Label(score int) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "very good"
	case score >= 40:
		return "good"
	case score >= 20:
		return "fair"
	default:
		return "poor"
	}
}

// TrendDirection classifies the change between two depth samples for
// display. Differences within 2cm read as stable.
func TrendDirection(currentCm, futureCm int) models.TrendDirection {
	diff := futureCm - currentCm
	switch {
	case diff > 2:
		return models.TrendDirection{Arrow: "↑", Class: "trend-up", Label: "steigend"}
	case diff < -2:
		return models.TrendDirection{Arrow: "↓", Class: "trend-down", Label: "fallend"}
	default:
		return models.TrendDirection{Arrow: "→", Class: "trend-stable", Label: "stabil"}
	}
}
