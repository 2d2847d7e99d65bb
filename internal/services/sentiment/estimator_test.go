package sentiment

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestKeywordEstimator_Score(t *testing.T) {
	t.Parallel()

	estimator := NewKeywordEstimator()

	tests := []struct {
		name          string
		text          string
		wantScore     float64
		wantMagnitude float64
	}{
		{
			name: "empty text",
			text: "",
		},
		{
			name: "neutral text",
			text: "What is entropy?",
		},
		{
			name:          "single positive word",
			text:          "this is great",
			wantScore:     0.1,
			wantMagnitude: 0.1,
		},
		{
			name:          "single negative word",
			text:          "this is confusing",
			wantScore:     -0.1,
			wantMagnitude: 0.1,
		},
		{
			name:          "mixed polarity cancels score but not magnitude",
			text:          "great subject but so hard",
			wantScore:     0,
			wantMagnitude: 0.2,
		},
		{
			name:          "case insensitive",
			text:          "GREAT Great great",
			wantScore:     0.3,
			wantMagnitude: 0.3,
		},
		{
			name:          "punctuation does not block matches",
			text:          "thanks! that was helpful.",
			wantScore:     0.2,
			wantMagnitude: 0.2,
		},
		{
			name:          "markers inside longer words do not match",
			text:          "the blackboard was hardwood",
			wantScore:     0,
			wantMagnitude: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := estimator.Score(tt.text)
			if !almostEqual(got.Score, tt.wantScore) {
				t.Errorf("Expected score %v, got %v", tt.wantScore, got.Score)
			}
			if !almostEqual(got.Magnitude, tt.wantMagnitude) {
				t.Errorf("Expected magnitude %v, got %v", tt.wantMagnitude, got.Magnitude)
			}
		})
	}
}

func TestKeywordEstimator_Clamping(t *testing.T) {
	t.Parallel()

	estimator := NewKeywordEstimator()

	// 15 positive hits would score 1.5 unclamped.
	positive := strings.Repeat("great ", 15)
	got := estimator.Score(positive)
	if got.Score != 1 {
		t.Errorf("Expected score clamped to 1, got %v", got.Score)
	}
	if got.Magnitude != 1 {
		t.Errorf("Expected magnitude clamped to 1, got %v", got.Magnitude)
	}

	negative := strings.Repeat("awful ", 15)
	got = estimator.Score(negative)
	if got.Score != -1 {
		t.Errorf("Expected score clamped to -1, got %v", got.Score)
	}
	if got.Magnitude != 1 {
		t.Errorf("Expected magnitude clamped to 1, got %v", got.Magnitude)
	}
}

func TestKeywordEstimator_BoundsHoldForArbitraryText(t *testing.T) {
	t.Parallel()

	estimator := NewKeywordEstimator()

	inputs := []string{
		"",
		"    ",
		"\n\t",
		strings.Repeat("love hate ", 100),
		"ünïcödé tëxt with good vibes",
		strings.Repeat("a", 10000),
	}

	for _, input := range inputs {
		got := estimator.Score(input)
		if got.Score < -1 || got.Score > 1 {
			t.Errorf("Score out of bounds for %q: %v", input[:min(20, len(input))], got.Score)
		}
		if got.Magnitude < 0 || got.Magnitude > 1 {
			t.Errorf("Magnitude out of bounds for %q: %v", input[:min(20, len(input))], got.Magnitude)
		}
	}
}
