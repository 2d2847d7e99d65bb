package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/contextcache"
	"github.com/lumistudy/tutor-api/internal/models"
	"github.com/lumistudy/tutor-api/internal/request"
)

func TestUploadContent(t *testing.T) {
	t.Parallel()

	cache := contextcache.New()
	handler := NewUploadHandler(cache, zap.NewNop())
	user := &models.User{ID: uuid.New(), Name: "Ada", Email: "ada@x.com"}

	post := func(t *testing.T, body map[string]string) *httptest.ResponseRecorder {
		t.Helper()
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		req := httptest.NewRequest("POST", "/api/upload-pdf-content", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req = req.WithContext(request.WithUser(req.Context(), user))
		w := httptest.NewRecorder()
		handler.UploadContent(w, req)
		return w
	}

	w := post(t, map[string]string{
		"userId":   user.ID.String(),
		"subject":  "Biology",
		"fileName": "cells.pdf",
		"content":  "The cell is the basic unit of life.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	if got := cache.Fetch(user.ID, "Biology"); got != "The cell is the basic unit of life." {
		t.Errorf("Expected cached content, got %q", got)
	}

	// Re-upload replaces the previous text.
	w = post(t, map[string]string{
		"userId":   user.ID.String(),
		"subject":  "Biology",
		"fileName": "cells-v2.pdf",
		"content":  "Mitochondria are organelles.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if got := cache.Fetch(user.ID, "Biology"); got != "Mitochondria are organelles." {
		t.Errorf("Expected replaced content, got %q", got)
	}

	// Uploading for someone else is forbidden.
	w = post(t, map[string]string{
		"userId":   uuid.NewString(),
		"subject":  "Biology",
		"fileName": "cells.pdf",
		"content":  "text",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}

	// Missing content is rejected.
	w = post(t, map[string]string{
		"userId":   user.ID.String(),
		"subject":  "Biology",
		"fileName": "cells.pdf",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}
