package ai

import "context"

// CompletionProvider is the interface to the external completion API
type CompletionProvider interface {
	// Complete sends one completion request and returns the first choice's text
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is a single-turn prompt for the provider
type CompletionRequest struct {
	System string
	User   string
}

// ReplySource tags where a chat reply came from
type ReplySource string

const (
	// SourceAI marks a genuine completion from the external provider
	SourceAI ReplySource = "ai"
	// SourceFallback marks a canned reply produced locally
	SourceFallback ReplySource = "fallback"
)

// Reply is a tagged chat response. Callers can distinguish a real completion
// from a degraded one via Source; FallbackReason is set only on fallbacks and
// is meant for logs and analytics, never for end users.
type Reply struct {
	Text           string
	Source         ReplySource
	FallbackReason string
}
