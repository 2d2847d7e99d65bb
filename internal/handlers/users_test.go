package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/request"
)

func TestGetUser(t *testing.T) {
	t.Parallel()

	user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com"}

	handler := NewUserHandler()
	router := mux.NewRouter()
	handler.RegisterRoutes(router.PathPrefix("/api").Subrouter())

	tests := []struct {
		name       string
		pathUserID string
		wantStatus int
	}{
		{
			name:       "own profile",
			pathUserID: user.ID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "someone else's profile",
			pathUserID: uuid.NewString(),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed id",
			pathUserID: "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/api/user/"+tt.pathUserID, nil)
			req = req.WithContext(request.WithUser(req.Context(), user))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			if tt.wantStatus == http.StatusOK {
				var got models.User
				if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if got.Email != user.Email {
					t.Errorf("Expected email %s, got %s", user.Email, got.Email)
				}
				if got.PasswordHash != "" {
					t.Error("Password hash must never appear in responses")
				}
			}
		})
	}
}
