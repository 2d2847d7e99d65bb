package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/contextcache"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/services/sentiment"
)

const (
	// MaxContextExcerpt is how much uploaded reference text is folded into a
	// prompt. The cache stores full documents; truncation happens at read time.
	MaxContextExcerpt = 1500
)

// ErrUnknownSubject is returned when the requested subject is not reference data
var ErrUnknownSubject = errors.New("unknown subject")

// ChatResult is the outcome of one chat turn
type ChatResult struct {
	Reply     Reply
	Sentiment models.Sentiment
	SubjectID uuid.UUID
}

// ChatService orchestrates one chat turn: subject validation, prompt assembly,
// the external completion call (with local fallback), and persistence.
type ChatService struct {
	provider  CompletionProvider // nil when no provider credential is configured
	estimator sentiment.Estimator
	subjects  database.SubjectRepositoryInterface
	messages  database.ChatMessageRepositoryInterface
	moods     database.MoodLogRepositoryInterface
	cache     *contextcache.Cache
	logger    *zap.Logger
}

// NewChatService creates a chat orchestrator. provider may be nil, in which
// case every turn takes the fallback path.
func NewChatService(
	provider CompletionProvider,
	estimator sentiment.Estimator,
	subjects database.SubjectRepositoryInterface,
	messages database.ChatMessageRepositoryInterface,
	moods database.MoodLogRepositoryInterface,
	cache *contextcache.Cache,
	zapLogger *zap.Logger,
) *ChatService {
	return &ChatService{
		provider:  provider,
		estimator: estimator,
		subjects:  subjects,
		messages:  messages,
		moods:     moods,
		cache:     cache,
		logger:    zapLogger,
	}
}

// HandleChat runs one tutoring turn for an authenticated user.
//
// The reply is never empty: provider failure or missing configuration yields a
// deterministic fallback. Persistence failure after a successful completion is
// surfaced as an error and the reply is withheld, so "got a reply" and
// "recorded a reply" stay atomic at this boundary.
func (s *ChatService) HandleChat(ctx context.Context, userID uuid.UUID, subjectName, message string) (*ChatResult, error) {
	subject, err := s.subjects.GetByName(ctx, subjectName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, fmt.Errorf("failed to look up subject: %w", err)
	}

	reply := s.requestReply(ctx, subject.Name, userID, message)

	// Sentiment is scored from the user's message only, never the AI's.
	score := s.estimator.Score(message)

	now := time.Now().UTC()
	userMsg := &models.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subject.ID,
		Sender:    models.SenderUser,
		Text:      message,
		Sentiment: &score,
		CreatedAt: now,
	}
	aiMsg := &models.ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subject.ID,
		Sender:    models.SenderAI,
		Text:      reply.Text,
		CreatedAt: now.Add(time.Millisecond),
	}
	moodEntry := &models.MoodLogEntry{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subject.ID,
		Score:     score.Score,
		Magnitude: score.Magnitude,
		Message:   message,
		CreatedAt: now,
	}

	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to record user message: %w", err)
	}
	if err := s.messages.Create(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("failed to record ai message: %w", err)
	}
	if err := s.moods.Create(ctx, moodEntry); err != nil {
		return nil, fmt.Errorf("failed to record mood log: %w", err)
	}

	return &ChatResult{
		Reply:     reply,
		Sentiment: score,
		SubjectID: subject.ID,
	}, nil
}

// requestReply obtains the reply text: one provider attempt, no retries, with
// the fallback activating on any failure or missing configuration.
func (s *ChatService) requestReply(ctx context.Context, subjectName string, userID uuid.UUID, message string) Reply {
	if s.provider == nil {
		return Reply{
			Text:           FallbackResponse(subjectName, message),
			Source:         SourceFallback,
			FallbackReason: "provider not configured",
		}
	}

	req := s.buildRequest(subjectName, userID, message)

	text, err := s.provider.Complete(ctx, req)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("completion_failed_using_fallback",
				zap.String("subject", subjectName),
				zap.String("error", logger.SanitizeError(err)),
			)
		}
		return Reply{
			Text:           FallbackResponse(subjectName, message),
			Source:         SourceFallback,
			FallbackReason: err.Error(),
		}
	}

	return Reply{Text: text, Source: SourceAI}
}

// buildRequest assembles the completion prompt, folding in a truncated excerpt
// of any uploaded reference text for this (user, subject) pair.
func (s *ChatService) buildRequest(subjectName string, userID uuid.UUID, message string) CompletionRequest {
	system := "You are a friendly, patient AI tutor for " + subjectName + ". " +
		"Explain concepts clearly, encourage the student, and keep answers focused on " + subjectName + "."

	user := message
	if contextText := s.cache.Fetch(userID, subjectName); contextText != "" {
		excerpt := contextText
		if len(excerpt) > MaxContextExcerpt {
			excerpt = excerpt[:MaxContextExcerpt]
		}
		user = "Use this reference material from the student's document where relevant:\n" +
			excerpt + "\n\nStudent message: " + message
	}

	return CompletionRequest{System: system, User: user}
}
