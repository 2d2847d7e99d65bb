package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
)

const (
	// DefaultHistoryLimit caps history queries when no limit is given
	DefaultHistoryLimit = 200
	// MaxHistoryLimit is the largest accepted history limit
	MaxHistoryLimit = 1000
)

// HistoryHandler handles conversation history and mood log requests
type HistoryHandler struct {
	messages database.ChatMessageRepositoryInterface
	moods    database.MoodLogRepositoryInterface
	subjects database.SubjectRepositoryInterface
	logger   *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(
	messages database.ChatMessageRepositoryInterface,
	moods database.MoodLogRepositoryInterface,
	subjects database.SubjectRepositoryInterface,
	log *zap.Logger,
) *HistoryHandler {
	return &HistoryHandler{messages: messages, moods: moods, subjects: subjects, logger: log}
}

// RegisterRoutes registers history routes on the given router
func (h *HistoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/history/{userId}", h.GetHistory).Methods("GET")
	r.HandleFunc("/history/{userId}/messages/{messageId}", h.SetSaved).Methods("PATCH")
	r.HandleFunc("/moodlogs/{userId}", h.GetMoodLogs).Methods("GET")
	r.HandleFunc("/clear-history/{userId}", h.ClearHistory).Methods("DELETE")
}

// GetHistory returns chat messages for a (user, subject) pair in
// chronological order. A limit keeps the most recent N entries while
// preserving oldest-first output order.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	subjectName := r.URL.Query().Get("subject")
	if subjectName == "" {
		respondJSONError(w, http.StatusBadRequest, "subject query parameter is required")
		return
	}

	limit := DefaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			respondJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed > MaxHistoryLimit {
			parsed = MaxHistoryLimit
		}
		limit = parsed
	}

	ctx := r.Context()
	subject, err := h.subjects.GetByName(ctx, subjectName)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusBadRequest, "unknown subject")
			return
		}
		h.logger.Error("subject_lookup_failed", zap.String("error", logger.SanitizeError(err)))
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	history, err := h.messages.History(ctx, user.ID, subject.ID, limit)
	if err != nil {
		h.logger.Error("history_query_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if history == nil {
		history = []*models.ChatMessage{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": history})
}

// SetSavedRequest toggles the saved flag on one message
type SetSavedRequest struct {
	Saved bool `json:"saved"`
}

// SetSaved marks or unmarks a message as saved, the only mutation chat
// messages support.
func (h *HistoryHandler) SetSaved(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	var req SetSavedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	if err := h.messages.SetSaved(ctx, user.ID, messageID, req.Saved); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "message not found")
			return
		}
		h.logger.Error("set_saved_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("message_id", messageID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to update message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "message updated"})
}

// GetMoodLogs returns mood log entries across all subjects, newest first,
// optionally windowed to the last N days.
func (h *HistoryHandler) GetMoodLogs(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	days := 0
	if d := r.URL.Query().Get("days"); d != "" {
		parsed, err := strconv.Atoi(d)
		if err != nil || parsed <= 0 {
			respondJSONError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	ctx := r.Context()
	logs, err := h.moods.ListByUser(ctx, user.ID, days)
	if err != nil {
		h.logger.Error("mood_logs_query_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to load mood logs")
		return
	}

	if logs == nil {
		logs = []*models.MoodLogEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"moodLogs": logs})
}

// ClearHistoryRequest names the subject whose conversation is being cleared
type ClearHistoryRequest struct {
	Subject string `json:"subject" validate:"required,max=100"`
}

// ClearHistory deletes all messages and mood logs for the (user, subject)
// pair. Idempotent: clearing an already-empty conversation succeeds.
func (h *HistoryHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req ClearHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Subject == "" {
		respondJSONError(w, http.StatusBadRequest, "subject is required")
		return
	}

	ctx := r.Context()
	subject, err := h.subjects.GetByName(ctx, req.Subject)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusBadRequest, "unknown subject")
			return
		}
		h.logger.Error("subject_lookup_failed", zap.String("error", logger.SanitizeError(err)))
		respondJSONError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	if err := h.messages.DeleteBySubject(ctx, user.ID, subject.ID); err != nil {
		h.logger.Error("history_delete_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	if err := h.moods.DeleteBySubject(ctx, user.ID, subject.ID); err != nil {
		h.logger.Error("mood_logs_delete_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}

	h.logger.Info("history_cleared",
		zap.String("user_id", user.ID.String()),
		zap.String("subject", req.Subject),
	)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "history cleared for " + req.Subject,
	})
}
