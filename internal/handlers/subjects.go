package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
)

// SubjectHandler serves the reference subject list
type SubjectHandler struct {
	subjects database.SubjectRepositoryInterface
	logger   *zap.Logger
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjects database.SubjectRepositoryInterface, log *zap.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, logger: log}
}

// RegisterRoutes registers subject routes on the given router
func (h *SubjectHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/subjects", h.ListSubjects).Methods("GET")
}

// ListSubjects returns all tutoring subjects. Public, no auth required.
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.List(r.Context())
	if err != nil {
		h.logger.Error("subjects_query_failed", zap.String("error", logger.SanitizeError(err)))
		respondJSONError(w, http.StatusInternalServerError, "failed to load subjects")
		return
	}

	if subjects == nil {
		subjects = []*models.Subject{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}
