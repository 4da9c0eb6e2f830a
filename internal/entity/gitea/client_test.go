package gitea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Kargones/teax/internal/pkg/logging"
)

// testClient создаёт клиент поверх httptest сервера.
func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(server.URL, "testuser", "testtoken",
		TLSOptions{AllowHTTP: true}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

// TestNewClient тестирует создание клиента и нормализацию URL
func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		rawURL      string
		opts        TLSOptions
		expectError bool
		wantBase    string
	}{
		{
			name:     "https url without suffix",
			rawURL:   "https://gitea.example.com",
			wantBase: "https://gitea.example.com/api/v1/",
		},
		{
			name:     "https url with api suffix",
			rawURL:   "https://gitea.example.com/api",
			wantBase: "https://gitea.example.com/api/v1/",
		},
		{
			name:     "https url with api v1 suffix and slash",
			rawURL:   "https://gitea.example.com/api/v1/",
			wantBase: "https://gitea.example.com/api/v1/",
		},
		{
			name:     "https url with subpath",
			rawURL:   "https://example.com/gitea",
			wantBase: "https://example.com/gitea/api/v1/",
		},
		{
			name:        "plain http rejected by default",
			rawURL:      "http://gitea.example.com",
			expectError: true,
		},
		{
			name:     "plain http allowed with explicit override",
			rawURL:   "http://gitea.example.com",
			opts:     TLSOptions{AllowHTTP: true},
			wantBase: "http://gitea.example.com/api/v1/",
		},
		{
			name:        "unsupported scheme",
			rawURL:      "ftp://gitea.example.com",
			expectError: true,
		},
		{
			name:        "missing ca bundle file",
			rawURL:      "https://gitea.example.com",
			opts:        TLSOptions{CABundlePath: "/nonexistent/ca.pem"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.rawURL, "user", "token", tt.opts, logging.NewNopLogger())

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !IsValidationError(err) {
					t.Errorf("Expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if client.BaseURL() != tt.wantBase {
				t.Errorf("Expected base URL %s, got %s", tt.wantBase, client.BaseURL())
			}
		})
	}
}

// TestNewClientIdempotentNormalization тестирует идемпотентность нормализации:
// повторное создание клиента от уже нормализованного URL не задваивает /api/v1
func TestNewClientIdempotentNormalization(t *testing.T) {
	first, err := NewClient("https://gitea.example.com/sub", "u", "t", TLSOptions{}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	second, err := NewClient(first.BaseURL(), "u", "t", TLSOptions{}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewClient from normalized: %v", err)
	}
	if first.BaseURL() != second.BaseURL() {
		t.Errorf("Normalization not idempotent: %s vs %s", first.BaseURL(), second.BaseURL())
	}
	if strings.Contains(second.BaseURL(), "/api/v1/api/v1") {
		t.Errorf("Doubled api segment in %s", second.BaseURL())
	}
}

// TestAuthorizationHeader тестирует передачу токена в заголовке Authorization
func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1,"number":1,"title":"x"}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	if _, err := client.GetIssue(context.Background(), "o", "r", 1); err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if gotAuth != "token testtoken" {
		t.Errorf("Expected Authorization 'token testtoken', got %q", gotAuth)
	}
}

// TestCheckStatusMapping тестирует отображение HTTP статусов в коды ошибок
func TestCheckStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{name: "unauthorized", status: 401, wantCode: ErrGiteaAuth},
		{name: "forbidden", status: 403, wantCode: ErrGiteaAuth},
		{name: "not found", status: 404, wantCode: ErrGiteaNotFound},
		{name: "server error", status: 500, wantCode: ErrGiteaAPI},
		{name: "conflict", status: 409, wantCode: ErrGiteaAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"details"}`))
			}))
			defer server.Close()

			client := testClient(t, server)
			defer func() { _ = client.Close() }()

			_, err := client.GetIssue(context.Background(), "o", "r", 1)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			giteaErr, ok := err.(*GiteaError)
			if !ok {
				t.Fatalf("Expected *GiteaError, got %T", err)
			}
			if giteaErr.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, giteaErr.Code)
			}
			if giteaErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, giteaErr.StatusCode)
			}
		})
	}
}

// TestDecodeErrorDistinctFromAPIError тестирует различение ошибок:
// 2xx с некорректным телом — DECODE_FAILED, а не API_FAILED
func TestDecodeErrorDistinctFromAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	_, err := client.GetIssue(context.Background(), "o", "r", 1)
	if err == nil {
		t.Fatal("Expected error but got none")
	}
	if !IsDecodeError(err) {
		t.Errorf("Expected decode error, got %v", err)
	}
	if IsAPIError(err) {
		t.Error("Decode error must not be classified as API error")
	}
}

// TestDecodeListDualShapes тестирует разбор списков в обеих формах ответа
func TestDecodeListDualShapes(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wrapKey     string
		wantLen     int
		expectError bool
	}{
		{
			name:    "bare array",
			body:    `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`,
			wrapKey: "runners",
			wantLen: 2,
		},
		{
			name:    "wrapped object",
			body:    `{"total_count":2,"runners":[{"id":1,"name":"a"},{"id":2,"name":"b"}]}`,
			wrapKey: "runners",
			wantLen: 2,
		},
		{
			name:    "empty bare array",
			body:    `[]`,
			wrapKey: "runners",
			wantLen: 0,
		},
		{
			name:        "wrapped object without wrap key configured",
			body:        `{"items":[]}`,
			wrapKey:     "",
			expectError: true,
		},
		{
			name:        "wrapped object with missing key",
			body:        `{"other":[]}`,
			wrapKey:     "runners",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := decodeList[Runner]([]byte(tt.body), tt.wrapKey, "тест")
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				if !IsDecodeError(err) {
					t.Errorf("Expected decode error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(items) != tt.wantLen {
				t.Errorf("Expected %d items, got %d", tt.wantLen, len(items))
			}
		})
	}
}

// TestClientClose тестирует очистку кэшей при закрытии сессии
func TestClientClose(t *testing.T) {
	client, err := NewClient("https://gitea.example.com", "u", "t", TLSOptions{}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	client.labelCache.add("o/r", "bug", 1)
	client.milestoneCache.add("o/r", "v1.0", 2)

	if err := client.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, ok := client.labelCache.lookup("o/r", "bug"); ok {
		t.Error("Label cache not cleared after Close")
	}
	if _, ok := client.milestoneCache.lookup("o/r", "v1.0"); ok {
		t.Error("Milestone cache not cleared after Close")
	}
}
