package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// UserHandler handles user profile requests
type UserHandler struct{}

// NewUserHandler creates a new user handler
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// RegisterRoutes registers user routes on the given router
func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/user/{userId}", h.GetUser).Methods("GET")
}

// GetUser returns the authenticated user's profile. Ownership enforcement
// makes a lookup unnecessary: the middleware already loaded the user.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireOwner(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, user)
}
