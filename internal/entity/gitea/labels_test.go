package gitea

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// labelServer поднимает сервер меток с подсчётом запросов листинга.
func labelServer(t *testing.T, labels *[]Label, listCalls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/repos/o/r/labels") {
			t.Errorf("Unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			*listCalls++
			if r.URL.Query().Get("page") != "1" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			_ = json.NewEncoder(w).Encode(*labels)
		case http.MethodPost:
			var req struct {
				Name  string `json:"name"`
				Color string `json:"color"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			created := Label{ID: int64(100 + len(*labels)), Name: req.Name, Color: req.Color}
			*labels = append(*labels, created)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// TestResolveLabelIDsCaching тестирует политику кэша разрешения меток:
// первый вызов заполняет кэш, повторные попадания не ходят на сервер
func TestResolveLabelIDsCaching(t *testing.T) {
	labels := []Label{{ID: 1, Name: "bug"}, {ID: 2, Name: "feature"}}
	listCalls := 0
	server := labelServer(t, &labels, &listCalls)
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	ids, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug", "feature"})
	if err != nil {
		t.Fatalf("ResolveLabelIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("Expected [1 2], got %v", ids)
	}
	if listCalls != 1 {
		t.Errorf("Expected 1 list call after first resolve, got %d", listCalls)
	}

	// Повторное разрешение из кэша, без запросов.
	if _, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug"}); err != nil {
		t.Fatalf("ResolveLabelIDs from cache: %v", err)
	}
	if listCalls != 1 {
		t.Errorf("Expected no extra list calls on cache hit, got %d", listCalls)
	}
}

// TestResolveLabelIDsRefreshOnMiss тестирует ровно одно обновление на промах:
// метка, появившаяся после заполнения кэша, находится после одного refetch
func TestResolveLabelIDsRefreshOnMiss(t *testing.T) {
	labels := []Label{{ID: 1, Name: "bug"}}
	listCalls := 0
	server := labelServer(t, &labels, &listCalls)
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	if _, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug"}); err != nil {
		t.Fatalf("ResolveLabelIDs: %v", err)
	}
	if listCalls != 1 {
		t.Fatalf("Expected 1 list call, got %d", listCalls)
	}

	// Метка появилась на сервере после заполнения кэша.
	labels = append(labels, Label{ID: 2, Name: "urgent"})

	ids, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug", "urgent"})
	if err != nil {
		t.Fatalf("ResolveLabelIDs after server change: %v", err)
	}
	if len(ids) != 2 || ids[1] != 2 {
		t.Errorf("Expected refreshed ids [1 2], got %v", ids)
	}
	if listCalls != 2 {
		t.Errorf("Expected exactly one refresh (2 list calls total), got %d", listCalls)
	}
}

// TestResolveLabelIDsNotFound тестирует ошибку после единственного обновления:
// имя называется в сообщении, второго обновления в том же вызове нет
func TestResolveLabelIDsNotFound(t *testing.T) {
	labels := []Label{{ID: 1, Name: "bug"}}
	listCalls := 0
	server := labelServer(t, &labels, &listCalls)
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	// Кэш уже заполнен, два промаха в одном вызове.
	if _, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug"}); err != nil {
		t.Fatalf("ResolveLabelIDs: %v", err)
	}

	_, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"ghost", "phantom"})
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if !IsNotFoundError(err) {
		t.Errorf("Expected not found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("Expected label name in error, got %v", err)
	}
	if listCalls != 2 {
		t.Errorf("Expected exactly one refresh for the whole call, got %d list calls", listCalls)
	}
}

// TestCreateLabelUpdatesCache тестирует хук мутации: созданная метка
// разрешается из кэша без дополнительного листинга
func TestCreateLabelUpdatesCache(t *testing.T) {
	labels := []Label{{ID: 1, Name: "bug"}}
	listCalls := 0
	server := labelServer(t, &labels, &listCalls)
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	if _, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"bug"}); err != nil {
		t.Fatalf("ResolveLabelIDs: %v", err)
	}

	created, err := client.CreateLabel(ctx, "o", "r", "urgent", "ff0000", "")
	if err != nil {
		t.Fatalf("CreateLabel: %v", err)
	}

	ids, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"urgent"})
	if err != nil {
		t.Fatalf("ResolveLabelIDs after create: %v", err)
	}
	if ids[0] != created.ID {
		t.Errorf("Expected cached id %d, got %d", created.ID, ids[0])
	}
	if listCalls != 1 {
		t.Errorf("Expected no extra list calls after create, got %d", listCalls)
	}
}

// TestListLabelsRepopulatesCache тестирует перезаполнение кэша листингом
func TestListLabelsRepopulatesCache(t *testing.T) {
	labels := []Label{{ID: 1, Name: "bug"}, {ID: 2, Name: "feature"}}
	listCalls := 0
	server := labelServer(t, &labels, &listCalls)
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	got, err := client.ListLabels(ctx, "o", "r")
	if err != nil {
		t.Fatalf("ListLabels: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 labels, got %d", len(got))
	}

	// Разрешение после листинга идёт из кэша.
	if _, err := client.ResolveLabelIDs(ctx, "o", "r", []string{"feature"}); err != nil {
		t.Fatalf("ResolveLabelIDs: %v", err)
	}
	if listCalls != 1 {
		t.Errorf("Expected resolve to reuse listing cache, got %d list calls", listCalls)
	}
}
