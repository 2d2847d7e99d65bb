// Package sentiment provides a heuristic polarity estimator for chat messages.
// The Estimator interface keeps the scorer pluggable so a real sentiment model
// can replace the keyword implementation without touching the orchestrator.
package sentiment

import (
	"strings"

	"github.com/lumistudy/tutor-api/internal/models"
)

// Estimator scores the polarity and intensity of a piece of text
type Estimator interface {
	Score(text string) models.Sentiment
}

// keyword weight applied per polarity-marker occurrence
const step = 0.1

var positiveWords = map[string]struct{}{
	"good": {}, "great": {}, "happy": {}, "love": {}, "excellent": {},
	"amazing": {}, "wonderful": {}, "fantastic": {}, "awesome": {}, "fun": {},
	"easy": {}, "thanks": {}, "thank": {}, "interesting": {}, "enjoy": {},
	"clear": {}, "helpful": {},
}

var negativeWords = map[string]struct{}{
	"bad": {}, "sad": {}, "hate": {}, "terrible": {}, "awful": {},
	"confused": {}, "confusing": {}, "frustrated": {}, "frustrating": {},
	"difficult": {}, "hard": {}, "stuck": {}, "boring": {}, "angry": {},
	"worried": {}, "stressed": {}, "tired": {},
}

// KeywordEstimator scores text by counting fixed polarity-marker words.
// It is a pure function over its input: no external calls, cannot fail.
type KeywordEstimator struct{}

// NewKeywordEstimator creates the keyword-based estimator
func NewKeywordEstimator() *KeywordEstimator {
	return &KeywordEstimator{}
}

// Score tokenizes on whitespace and word boundaries, case-insensitive.
// Each positive hit adds +0.1 to score, each negative hit subtracts 0.1;
// every hit adds +0.1 to magnitude. Score clamps to [-1, 1], magnitude to [0, 1].
func (e *KeywordEstimator) Score(text string) models.Sentiment {
	var score, magnitude float64

	for _, word := range tokenize(text) {
		if _, ok := positiveWords[word]; ok {
			score += step
			magnitude += step
			continue
		}
		if _, ok := negativeWords[word]; ok {
			score -= step
			magnitude += step
		}
	}

	return models.Sentiment{
		Score:     clamp(score, -1, 1),
		Magnitude: clamp(magnitude, 0, 1),
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\''
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ Estimator = (*KeywordEstimator)(nil)
