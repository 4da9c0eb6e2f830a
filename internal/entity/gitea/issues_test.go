package gitea

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestCreateIssueMinimalBody тестирует минимальное тело создания:
// задача с одним заголовком уходит без лишних ключей
func TestCreateIssueMinimalBody(t *testing.T) {
	var rawBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/repos/o/r/issues" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		rawBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"New Issue","state":"open"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	issue, err := client.CreateIssue(context.Background(), "o", "r", IssueCreateOptions{Title: "New Issue"})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if issue.Number != 1 {
		t.Errorf("Expected issue number 1, got %d", issue.Number)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		t.Fatalf("Request body is not JSON: %v", err)
	}
	if len(payload) != 1 {
		t.Errorf("Expected exactly one key in body, got %v", payload)
	}
	var title string
	_ = json.Unmarshal(payload["title"], &title)
	if title != "New Issue" {
		t.Errorf("Expected title 'New Issue', got %q", title)
	}
}

// TestCreateIssueResolvesNames тестирует разрешение меток и вехи до создания
func TestCreateIssueResolvesNames(t *testing.T) {
	var createBody map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/repos/o/r/labels":
			_, _ = w.Write([]byte(`[{"id":11,"name":"bug"}]`))
		case r.URL.Path == "/api/v1/repos/o/r/milestones":
			_, _ = w.Write([]byte(`[{"id":5,"title":"v1.0","state":"open"}]`))
		case r.URL.Path == "/api/v1/repos/o/r/issues" && r.Method == http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &createBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"x","state":"open"}`))
		default:
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	_, err := client.CreateIssue(context.Background(), "o", "r", IssueCreateOptions{
		Title:     "x",
		Labels:    []string{"bug"},
		Milestone: "v1.0",
	})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}

	var labels []int64
	_ = json.Unmarshal(createBody["labels"], &labels)
	if len(labels) != 1 || labels[0] != 11 {
		t.Errorf("Expected resolved label ids [11], got %v", labels)
	}
	var milestone int64
	_ = json.Unmarshal(createBody["milestone"], &milestone)
	if milestone != 5 {
		t.Errorf("Expected resolved milestone 5, got %d", milestone)
	}
}

// TestEditIssueMilestoneSemantics тестирует снятие задачи с вехи:
// Milestone=0 отправляет явный null, ненулевое значение — ID
func TestEditIssueMilestoneSemantics(t *testing.T) {
	zero := int64(0)
	five := int64(5)

	tests := []struct {
		name     string
		opts     IssueEditOptions
		wantNull bool
		wantID   int64
	}{
		{name: "milestone cleared with explicit null", opts: IssueEditOptions{Milestone: &zero}, wantNull: true},
		{name: "milestone set by id", opts: IssueEditOptions{Milestone: &five}, wantID: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]json.RawMessage
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				_ = json.Unmarshal(body, &payload)
				_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"x","state":"open"}`))
			}))
			defer server.Close()

			client := testClient(t, server)
			defer func() { _ = client.Close() }()

			if _, err := client.EditIssue(context.Background(), "o", "r", 1, tt.opts); err != nil {
				t.Fatalf("EditIssue: %v", err)
			}

			raw, ok := payload["milestone"]
			if !ok {
				t.Fatalf("Expected milestone key in body, got %v", payload)
			}
			if tt.wantNull {
				if string(raw) != "null" {
					t.Errorf("Expected explicit null, got %s", raw)
				}
				return
			}
			var id int64
			_ = json.Unmarshal(raw, &id)
			if id != tt.wantID {
				t.Errorf("Expected milestone %d, got %d", tt.wantID, id)
			}
		})
	}
}

// TestCloseReopenIssue тестирует смену состояния задачи
func TestCloseReopenIssue(t *testing.T) {
	var gotState string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			State string `json:"state"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		gotState = payload.State
		_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"x","state":"` + payload.State + `"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	if _, err := client.CloseIssue(ctx, "o", "r", 1); err != nil {
		t.Fatalf("CloseIssue: %v", err)
	}
	if gotState != StateClosed {
		t.Errorf("Expected state closed, got %q", gotState)
	}

	if _, err := client.ReopenIssue(ctx, "o", "r", 1); err != nil {
		t.Fatalf("ReopenIssue: %v", err)
	}
	if gotState != StateOpen {
		t.Errorf("Expected state open, got %q", gotState)
	}
}

// TestEditIssueNoFields тестирует отклонение пустого изменения до запроса
func TestEditIssueNoFields(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	_, err := client.EditIssue(context.Background(), "o", "r", 1, IssueEditOptions{})
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if !IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Validation must reject before any request, got %d requests", requests)
	}
}
