package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/request"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// sanitizeErrorMessage removes internal details from error messages
func sanitizeErrorMessage(message string) string {
	if len(message) > 200 {
		message = message[:200] + "..."
	}
	return message
}

// respondJSONError sends a uniform {"error": message} response
func respondJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{
		"error": sanitizeErrorMessage(message),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// userFromRequest returns the authenticated user, responding 401 when absent
func userFromRequest(w http.ResponseWriter, r *http.Request) *models.User {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "missing authorization header")
		return nil
	}
	return user
}

// requireOwner checks that the authenticated user matches the {userId} path
// variable. A token for a different user gets 403; the caller should return
// immediately when ok is false.
func requireOwner(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "missing authorization header")
		return nil, false
	}

	pathID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid user id")
		return nil, false
	}

	if pathID != user.ID {
		respondJSONError(w, http.StatusForbidden, "access denied")
		return nil, false
	}

	return user, true
}
