package ai

import "strings"

// interrogative openers used to spot questions that lack a question mark
var questionOpeners = []string{
	"what", "why", "how", "when", "where", "who", "which",
	"is", "are", "can", "could", "do", "does", "should", "would",
}

// FallbackResponse synthesizes a deterministic, subject-aware reply for when
// the completion provider is unconfigured or unreachable. It must always be
// non-empty: the student never goes without an answer.
func FallbackResponse(subject, message string) string {
	if looksLikeQuestion(message) {
		return "That's a thoughtful question about " + subject + "! " +
			"I can't reach the full tutoring service right now, but here's how to make progress: " +
			"break the question into smaller parts, write down what you already know about each part, " +
			"and check your course notes or textbook for the key definitions involved. " +
			"Ask me again in a little while and I'll give you a complete answer."
	}

	return "Thanks for sharing that about " + subject + ". " +
		"I can't reach the full tutoring service right now, so let's keep it simple: " +
		"try summarizing the idea in your own words, and note anything that feels unclear. " +
		"Send me a question about it in a little while and we'll work through it together."
}

// looksLikeQuestion reports whether the message reads as a question
func looksLikeQuestion(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return false
	}
	if strings.HasSuffix(trimmed, "?") {
		return true
	}

	first := strings.ToLower(trimmed)
	if idx := strings.IndexFunc(first, func(r rune) bool { return r == ' ' || r == '\t' }); idx > 0 {
		first = first[:idx]
	}
	for _, opener := range questionOpeners {
		if first == opener {
			return true
		}
	}
	return false
}
