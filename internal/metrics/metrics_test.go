package metrics

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/verte-zerg/typespeed/internal/model"
)

func TestWPM(t *testing.T) {
	tests := []struct {
		correct int
		seconds int
		want    int
	}{
		{0, 0, 0},
		{250, 0, 0},
		{0, 30, 0},
		{250, 60, 50},
		{100, 30, 40},
		{2, 1, 24},
		{7, 60, 1},
	}
	for _, tt := range tests {
		if got := WPM(tt.correct, tt.seconds); got != tt.want {
			t.Fatalf("WPM(%d, %d) = %d, want %d", tt.correct, tt.seconds, got, tt.want)
		}
	}
}

func TestWPMProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		correct := rapid.IntRange(0, 100000).Draw(rt, "correct")
		seconds := rapid.IntRange(0, 100000).Draw(rt, "seconds")
		if got := WPM(0, seconds); got != 0 {
			rt.Fatalf("WPM(0, %d) = %d, want 0", seconds, got)
		}
		if got := WPM(correct, 0); got != 0 {
			rt.Fatalf("WPM(%d, 0) = %d, want 0", correct, got)
		}
		if got := WPM(correct, seconds); got < 0 {
			rt.Fatalf("WPM(%d, %d) = %d, want non-negative", correct, seconds, got)
		}
	})
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		correct int
		total   int
		want    float64
	}{
		{0, 0, 100},
		{2, 3, 66.7},
		{1, 3, 33.3},
		{0, 4, 0},
		{199, 200, 99.5},
	}
	for _, tt := range tests {
		if got := Accuracy(tt.correct, tt.total); got != tt.want {
			t.Fatalf("Accuracy(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestAccuracyAllCorrect(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(1, 1000000).Draw(rt, "total")
		if got := Accuracy(total, total); got != 100 {
			rt.Fatalf("Accuracy(%d, %d) = %v, want 100", total, total, got)
		}
		correct := rapid.IntRange(0, total).Draw(rt, "correct")
		got := Accuracy(correct, total)
		if got < 0 || got > 100 {
			rt.Fatalf("Accuracy(%d, %d) = %v out of range", correct, total, got)
		}
	})
}

func TestFormatElapsed(t *testing.T) {
	tests := map[int]string{
		0:    "0s",
		45:   "45s",
		59:   "59s",
		60:   "1m 0s",
		90:   "1m 30s",
		3601: "60m 1s",
	}
	for seconds, want := range tests {
		if got := FormatElapsed(seconds); got != want {
			t.Fatalf("FormatElapsed(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		wpm  int
		want string
		tier model.Tier
	}{
		{120, "Excellent", model.TierExcellent},
		{70, "Excellent", model.TierExcellent},
		{69, "Good", model.TierGood},
		{50, "Good", model.TierGood},
		{49, "Average", model.TierAverage},
		{30, "Average", model.TierAverage},
		{29, "Below Average", model.TierBelowAverage},
		{15, "Below Average", model.TierBelowAverage},
		{14, "Practice More", model.TierPracticeMore},
		{0, "Practice More", model.TierPracticeMore},
		{-5, "Practice More", model.TierPracticeMore},
	}
	for _, tt := range tests {
		got := RatingFor(tt.wpm)
		if got.Label != tt.want || got.Tier != tt.tier {
			t.Fatalf("RatingFor(%d) = %+v, want %s/%d", tt.wpm, got, tt.want, tt.tier)
		}
	}
}

func TestRatingForIsMonotonic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(-1000, 1000).Draw(rt, "a")
		b := rapid.IntRange(a, 1000).Draw(rt, "b")
		if RatingFor(a).Tier > RatingFor(b).Tier {
			rt.Fatalf("tier for %d above tier for %d", a, b)
		}
	})
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]int{4, 4, 4}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]int{0, 50, 100})
	if len(got) != 3 {
		t.Fatalf("expected 3 glyphs, got %q", got)
	}
	if got[0] != ' ' || got[2] != '@' {
		t.Fatalf("expected min and max glyphs at the ends, got %q", got)
	}
}
