package gitea

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestCreateAccessToken тестирует создание токена с HTTP basic авторизацией
func TestCreateAccessToken(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1,"name":"ci-token","sha1":"secretvalue","token_last_eight":"lue","scopes":["write:repository"]}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	token, err := client.CreateAccessToken(context.Background(), "", "password123", "ci-token", []string{"write:repository"})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	if gotPath != "/api/v1/users/testuser/tokens" {
		t.Errorf("Unexpected path %s", gotPath)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("testuser:password123"))
	if gotAuth != wantAuth {
		t.Errorf("Expected basic auth header, got %q", gotAuth)
	}
	if token.SHA1 != "secretvalue" {
		t.Errorf("Expected token value in response, got %q", token.SHA1)
	}
}

// TestCreateAccessTokenUserOverride тестирует явное имя пользователя вместо логина сессии
func TestCreateAccessTokenUserOverride(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":2,"name":"bootstrap","sha1":"v","token_last_eight":"v","scopes":null}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	if _, err := client.CreateAccessToken(context.Background(), "admin", "pw", "bootstrap", nil); err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if gotPath != "/api/v1/users/admin/tokens" {
		t.Errorf("Unexpected path %s", gotPath)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:pw"))
	if gotAuth != wantAuth {
		t.Errorf("Expected basic auth for overridden user, got %q", gotAuth)
	}
}

// TestCreateAccessTokenValidation тестирует отклонение до запроса
func TestCreateAccessTokenValidation(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	if _, err := client.CreateAccessToken(context.Background(), "", "pw", "", nil); err == nil {
		t.Fatal("Expected error for empty name but got none")
	}
	if requests != 0 {
		t.Errorf("Validation must reject before any request, got %d requests", requests)
	}
}
