package gitea

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestAddComment тестирует создание комментария к задаче
func TestAddComment(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":101,"body":"готово","user":{"id":1,"login":"testuser"},"created_at":"2026-08-01T10:00:00Z","updated_at":"2026-08-01T10:00:00Z"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	comment, err := client.AddComment(context.Background(), "o", "r", 5, "готово")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if gotPath != "/api/v1/repos/o/r/issues/5/comments" {
		t.Errorf("Unexpected path %s", gotPath)
	}
	if gotBody["body"] != "готово" {
		t.Errorf("Unexpected body %v", gotBody)
	}
	if comment.ID != 101 {
		t.Errorf("Expected comment id 101, got %d", comment.ID)
	}
}

// TestEditComment тестирует изменение комментария: PATCH по id комментария,
// без номера задачи в пути
func TestEditComment(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"id":101,"body":"исправлено","user":{"id":1,"login":"testuser"},"created_at":"2026-08-01T10:00:00Z","updated_at":"2026-08-02T09:30:00Z"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	comment, err := client.EditComment(context.Background(), "o", "r", 101, "исправлено")
	if err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("Expected PATCH, got %s", gotMethod)
	}
	if gotPath != "/api/v1/repos/o/r/issues/comments/101" {
		t.Errorf("Unexpected path %s", gotPath)
	}
	if gotBody["body"] != "исправлено" {
		t.Errorf("Unexpected body %v", gotBody)
	}
	if comment.UpdatedAt == comment.CreatedAt {
		t.Errorf("Expected updated_at to move after edit, got %q", comment.UpdatedAt)
	}
}

// TestEditCommentEmptyBody тестирует отклонение пустого текста до запроса
func TestEditCommentEmptyBody(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	if _, err := client.EditComment(context.Background(), "o", "r", 101, ""); err == nil {
		t.Fatal("Expected error for empty body but got none")
	}
	if requests != 0 {
		t.Errorf("Validation must reject before any request, got %d requests", requests)
	}
}

// TestDeleteComment тестирует удаление комментария по id
func TestDeleteComment(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	if err := client.DeleteComment(context.Background(), "o", "r", 101); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("Expected DELETE, got %s", gotMethod)
	}
	if gotPath != "/api/v1/repos/o/r/issues/comments/101" {
		t.Errorf("Unexpected path %s", gotPath)
	}
}
