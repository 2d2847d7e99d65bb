package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/contextcache"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/validation"
)

// UploadHandler handles study material uploads
type UploadHandler struct {
	cache  *contextcache.Cache
	logger *zap.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(cache *contextcache.Cache, log *zap.Logger) *UploadHandler {
	return &UploadHandler{cache: cache, logger: log}
}

// RegisterRoutes registers upload routes on the given router
func (h *UploadHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/upload-pdf-content", h.UploadContent).Methods("POST")
}

// UploadContentRequest carries text extracted client-side from a document
type UploadContentRequest struct {
	UserID   string `json:"userId" validate:"required,uuid"`
	Subject  string `json:"subject" validate:"required,max=100"`
	FileName string `json:"fileName" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
}

// UploadContent stores extracted document text as chat context for the
// (user, subject) pair. Re-uploading replaces the previous text.
func (h *UploadHandler) UploadContent(w http.ResponseWriter, r *http.Request) {
	user := userFromRequest(w, r)
	if user == nil {
		return
	}

	var req UploadContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = validation.SanitizeText(req.Content)
	if err := validation.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.UserID != user.ID.String() {
		respondJSONError(w, http.StatusForbidden, "access denied")
		return
	}

	h.cache.Store(user.ID, req.Subject, req.Content)

	h.logger.Info("context_uploaded",
		zap.String("user_id", user.ID.String()),
		zap.String("subject", req.Subject),
		zap.String("file_name", logger.SanitizeString(req.FileName, 100)),
		zap.Int("content_length", len(req.Content)),
	)

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "content uploaded for " + req.Subject,
	})
}
