package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/queue"
	"github.com/lumistudy/tutor-api/internal/services/ai"
	"github.com/lumistudy/tutor-api/internal/validation"
)

// ChatHandler handles tutoring chat requests
type ChatHandler struct {
	chatService *ai.ChatService
	jobQueue    queue.JobQueue // nil when the queue is not configured
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *ai.ChatService, jobQueue queue.JobQueue, log *zap.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, jobQueue: jobQueue, logger: log}
}

// RegisterRoutes registers chat routes on the given router
func (h *ChatHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/chat", h.Chat).Methods("POST")
}

// ChatRequest represents one chat turn request
type ChatRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	Message string `json:"message" validate:"required,max=10000"`
	Subject string `json:"subject" validate:"required,max=100"`
}

// ChatResponse is the reply to one chat turn
type ChatResponse struct {
	AIResponse string           `json:"aiResponse"`
	Sentiment  models.Sentiment `json:"sentiment"`
	Source     string           `json:"source"`
}

// Chat runs one tutoring turn and returns the reply with sentiment
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user := userFromRequest(w, r)
	if user == nil {
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Message = validation.SanitizeText(req.Message)
	if err := validation.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID != user.ID.String() {
		respondJSONError(w, http.StatusForbidden, "access denied")
		return
	}

	ctx := r.Context()
	result, err := h.chatService.HandleChat(ctx, user.ID, req.Subject, req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrUnknownSubject) {
			respondJSONError(w, http.StatusBadRequest, "unknown subject")
			return
		}
		h.logger.Error("chat_turn_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to process chat message")
		return
	}

	// Queue unavailability never fails a chat turn.
	if h.jobQueue != nil {
		job := queue.NewJob(queue.JobTypeMoodRollup, user.ID, result.SubjectID)
		if err := h.jobQueue.Enqueue(ctx, job); err != nil {
			h.logger.Warn("mood_rollup_enqueue_failed",
				zap.String("user_id", user.ID.String()),
				zap.String("error", logger.SanitizeError(err)),
			)
		}
	}

	respondJSON(w, http.StatusOK, ChatResponse{
		AIResponse: result.Reply.Text,
		Sentiment:  result.Sentiment,
		Source:     string(result.Reply.Source),
	})
}
