package middleware

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/auth"
	"github.com/lumistudy/tutor-api/internal/database"
	"github.com/lumistudy/tutor-api/internal/request"
)

// Auth creates authentication middleware that validates session tokens.
// A missing or malformed Authorization header is 401; a token that fails
// verification (bad signature, expired) is 403.
func Auth(issuer *auth.SessionIssuer, users database.UserRepositoryInterface, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			userID, err := issuer.Verify(parts[1])
			if err != nil {
				respondError(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := r.Context()
			user, err := users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, database.ErrNotFound) {
					// Valid signature but the subject no longer exists.
					respondError(w, http.StatusForbidden, "invalid or expired token")
					return
				}
				logger.Error("auth_user_lookup_failed",
					zap.String("user_id", userID.String()),
					zap.Error(err),
				)
				respondError(w, http.StatusInternalServerError, "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(request.WithUser(ctx, user)))
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
