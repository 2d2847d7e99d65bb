package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
)

// MoodSummaryHandler serves the rollup worker's per-subject mood aggregates
type MoodSummaryHandler struct {
	summaries database.MoodSummaryRepositoryInterface
	logger    *zap.Logger
}

// NewMoodSummaryHandler creates a new mood summary handler
func NewMoodSummaryHandler(summaries database.MoodSummaryRepositoryInterface, log *zap.Logger) *MoodSummaryHandler {
	return &MoodSummaryHandler{summaries: summaries, logger: log}
}

// RegisterRoutes registers mood summary routes on the given router
func (h *MoodSummaryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/moodsummary/{userId}", h.GetMoodSummaries).Methods("GET")
}

// GetMoodSummaries returns the per-subject mood aggregates for the user.
// Summaries are refreshed asynchronously, so a user who has chatted may
// still see an empty list until the worker catches up.
func (h *MoodSummaryHandler) GetMoodSummaries(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	summaries, err := h.summaries.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("mood_summaries_query_failed",
			zap.String("user_id", user.ID.String()),
			zap.String("error", logger.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to load mood summaries")
		return
	}

	if summaries == nil {
		summaries = []*models.MoodSummary{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"moodSummaries": summaries})
}
