package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/lumistudy/tutor-api/internal/models"
)

func TestListSubjects(t *testing.T) {
	t.Parallel()

	handler := NewSubjectHandler(newFakeSubjectRepo("Mathematics", "History"), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/subjects", nil)
	w := httptest.NewRecorder()
	handler.ListSubjects(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Subjects []*models.Subject `json:"subjects"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.Subjects) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(resp.Subjects))
	}
	if resp.Subjects[0].Name != "Mathematics" {
		t.Errorf("Expected first subject Mathematics, got %s", resp.Subjects[0].Name)
	}
}

func TestListSubjects_Empty(t *testing.T) {
	t.Parallel()

	handler := NewSubjectHandler(newFakeSubjectRepo(), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/subjects", nil)
	w := httptest.NewRecorder()
	handler.ListSubjects(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Subjects []*models.Subject `json:"subjects"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Subjects == nil {
		t.Error("Expected empty array, got null")
	}
}
