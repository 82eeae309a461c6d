// Package metrics contains typing speed and accuracy calculations.
package metrics

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/typespeed/internal/model"
)

// WordLength is the standard word size used for WPM.
const WordLength = 5

const sparkChars = " .:-=+*#%@"

// WPM returns words per minute for correct characters over elapsed seconds.
func WPM(correct, seconds int) int {
	if seconds == 0 {
		return 0
	}
	words := float64(correct) / WordLength
	minutes := float64(seconds) / 60.0
	return int(math.Round(words / minutes))
}

// Accuracy returns the percentage of correct characters, rounded to one decimal.
// No input counts as 100%.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 100
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// FormatElapsed renders whole seconds as "45s" or "1m 30s".
func FormatElapsed(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// RatingFor maps a WPM value to its performance band.
func RatingFor(wpm int) model.Rating {
	switch {
	case wpm >= 70:
		return model.Rating{Label: "Excellent", Tier: model.TierExcellent, Color: "#10B981"}
	case wpm >= 50:
		return model.Rating{Label: "Good", Tier: model.TierGood, Color: "#3B82F6"}
	case wpm >= 30:
		return model.Rating{Label: "Average", Tier: model.TierAverage, Color: "#F59E0B"}
	case wpm >= 15:
		return model.Rating{Label: "Below Average", Tier: model.TierBelowAverage, Color: "#EF4444"}
	default:
		return model.Rating{Label: "Practice More", Tier: model.TierPracticeMore, Color: "#6B7280"}
	}
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := float64(v-minVal) / float64(maxVal-minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
