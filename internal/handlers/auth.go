package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/auth"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/logger"
	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/validation"
)

// AuthHandler handles signup and login requests
type AuthHandler struct {
	users  database.UserRepositoryInterface
	issuer *auth.SessionIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users database.UserRepositoryInterface, issuer *auth.SessionIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer, logger: log}
}

// RegisterRoutes registers auth routes on the given router
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/signup", h.Signup).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
}

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by both signup and login
type SessionResponse struct {
	UserID uuid.UUID `json:"userId"`
	Token  string    `json:"token"`
}

// Signup registers a new user and returns a session token
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = validation.SanitizeText(req.Name)
	if err := validation.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("password_hash_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	ctx := r.Context()
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrEmailExists) {
			respondJSONError(w, http.StatusConflict, "email already registered")
			return
		}
		h.logger.Error("user_create_failed", zap.String("error", logger.SanitizeError(err)))
		respondJSONError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.Error("token_issue_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.logger.Info("user_registered", zap.String("user_id", user.ID.String()))
	respondJSON(w, http.StatusCreated, SessionResponse{UserID: user.ID, Token: token})
}

// Login authenticates a user by email and password. Unknown email and wrong
// password return the same status and take comparable time.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validation.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			auth.BurnPasswordCheck(req.Password)
			respondJSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("user_lookup_failed", zap.String("error", logger.SanitizeError(err)))
		respondJSONError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		respondJSONError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.Error("token_issue_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	if _, err := h.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not fatal for the login itself.
		h.logger.Warn("last_login_update_failed",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	h.logger.Info("user_logged_in", zap.String("user_id", user.ID.String()))
	respondJSON(w, http.StatusOK, SessionResponse{UserID: user.ID, Token: token})
}
