package gitea

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestMatchesWorkflow тестирует сравнение path запуска с искомым workflow
func TestMatchesWorkflow(t *testing.T) {
	tests := []struct {
		name    string
		runPath string
		want    string
		match   bool
	}{
		{name: "exact match", runPath: ".gitea/workflows/ci.yml", want: ".gitea/workflows/ci.yml", match: true},
		{name: "ref suffix stripped", runPath: ".gitea/workflows/ci.yml@refs/heads/main", want: ".gitea/workflows/ci.yml", match: true},
		{name: "different workflow", runPath: ".gitea/workflows/release.yml", want: ".gitea/workflows/ci.yml", match: false},
		{name: "different workflow with ref", runPath: ".gitea/workflows/release.yml@refs/heads/main", want: ".gitea/workflows/ci.yml", match: false},
		{name: "basename match", runPath: ".gitea/workflows/ci.yml", want: "ci.yml", match: true},
		{name: "basename match with ref", runPath: ".gitea/workflows/staging-deploy.yml@refs/heads/main", want: "staging-deploy.yml", match: true},
		{name: "basename mismatch", runPath: ".gitea/workflows/release.yml", want: "ci.yml", match: false},
		{name: "ref with at sign inside", runPath: "ci.yml@refs/tags/v1@beta", want: "ci.yml", match: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesWorkflow(tt.runPath, tt.want); got != tt.match {
				t.Errorf("matchesWorkflow(%q, %q) = %v, expected %v", tt.runPath, tt.want, got, tt.match)
			}
		})
	}
}

// TestListRunsFiltering тестирует клиентскую фильтрацию запусков
// по workflow и SHA после полной выборки
func TestListRunsFiltering(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/repos/o/r/actions/runs" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "1" {
			_, _ = w.Write([]byte(`{"workflow_runs":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"total_count":3,"workflow_runs":[
			{"id":1,"path":".gitea/workflows/ci.yml@refs/heads/main","head_sha":"aaa"},
			{"id":2,"path":".gitea/workflows/ci.yml","head_sha":"bbb"},
			{"id":3,"path":".gitea/workflows/release.yml","head_sha":"aaa"}
		]}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()
	ctx := context.Background()

	tests := []struct {
		name    string
		filter  RunFilter
		wantIDs []int64
	}{
		{name: "no filter", filter: RunFilter{}, wantIDs: []int64{1, 2, 3}},
		{name: "workflow filter strips ref suffix", filter: RunFilter{Workflow: ".gitea/workflows/ci.yml"}, wantIDs: []int64{1, 2}},
		{name: "workflow filter by filename", filter: RunFilter{Workflow: "ci.yml"}, wantIDs: []int64{1, 2}},
		{name: "sha filter", filter: RunFilter{SHA: "aaa"}, wantIDs: []int64{1, 3}},
		{name: "combined filters", filter: RunFilter{Workflow: ".gitea/workflows/ci.yml", SHA: "aaa"}, wantIDs: []int64{1}},
		{name: "no matches", filter: RunFilter{Workflow: "missing.yml"}, wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := client.ListRuns(ctx, "o", "r", tt.filter)
			if err != nil {
				t.Fatalf("ListRuns: %v", err)
			}
			if len(runs) != len(tt.wantIDs) {
				t.Fatalf("Expected %d runs, got %d", len(tt.wantIDs), len(runs))
			}
			for i, id := range tt.wantIDs {
				if runs[i].ID != id {
					t.Errorf("Expected run %d at position %d, got %d", id, i, runs[i].ID)
				}
			}
		})
	}
}

// TestListJobsWrappedResponse тестирует разбор обёрнутого списка job
func TestListJobsWrappedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/repos/o/r/actions/runs/7/jobs" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "1" {
			_, _ = w.Write([]byte(`{"jobs":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"total_count":1,"jobs":[{"id":42,"run_id":7,"name":"build","status":"completed","conclusion":"success"}]}`))
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	jobs, err := client.ListJobs(context.Background(), "o", "r", 7)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != 42 {
		t.Errorf("Expected job 42, got %v", jobs)
	}
}

// TestListRunnersScopes тестирует пути листинга раннеров по уровням
func TestListRunnersScopes(t *testing.T) {
	tests := []struct {
		name     string
		scope    Scope
		wantPath string
	}{
		{name: "repo scope", scope: RepoScope("o", "r"), wantPath: "/api/v1/repos/o/r/actions/runners"},
		{name: "org scope", scope: OrgScope("myorg"), wantPath: "/api/v1/orgs/myorg/actions/runners"},
		{name: "global scope", scope: GlobalScope(), wantPath: "/api/v1/admin/actions/runners"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"runners":[{"id":1,"name":"host-a","status":"online"}]}`))
			}))
			defer server.Close()

			client := testClient(t, server)
			defer func() { _ = client.Close() }()

			runners, err := client.ListRunners(context.Background(), tt.scope)
			if err != nil {
				t.Fatalf("ListRunners: %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("Expected path %s, got %s", tt.wantPath, gotPath)
			}
			if len(runners) != 1 || runners[0].Name != "host-a" {
				t.Errorf("Unexpected runners %v", runners)
			}
		})
	}
}

// TestListRunnersInvalidScope тестирует отклонение нулевого уровня до запроса
func TestListRunnersInvalidScope(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	client := testClient(t, server)
	defer func() { _ = client.Close() }()

	_, err := client.ListRunners(context.Background(), Scope{})
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
