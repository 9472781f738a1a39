package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"testing"

	"techjobs/internal/core/logger"
	"techjobs/internal/source"
	"techjobs/internal/store"
)

const testJobs = `name,employer,location,position type,core competency
Junior Data Analyst,Lockerdome,Saint Louis,Data Scientist / Business Intelligence,Statistical Analysis
Junior Web Developer,Cozy,Portland,Web - Back End,Ruby
Full Stack Developer,"Enterprise Holdings, Inc",Kansas City,Web - Full Stack,Java
`

func createTestDaemon(t *testing.T, src source.Source) *Daemon {
	t.Helper()
	s := store.New(src, store.WithLogger(logger.Discard()))
	d, err := NewDaemon("", false, WithStore(s), WithLogger(logger.Discard()))
	if err != nil {
		t.Fatalf("Failed to create daemon: %v", err)
	}
	return d
}

func doRequest(t *testing.T, d *Daemon, target string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	d.Handler().ServeHTTP(w, req)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Expected JSON response for %s, got %q", target, ct)
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("Failed to decode response for %s: %v", target, err)
		}
	}
	return w.Code
}

type jobsResponse struct {
	Jobs  []map[string]string `json:"jobs"`
	Count int                 `json:"count"`
}

func TestDaemon_ListJobs(t *testing.T) {
	d := createTestDaemon(t, source.NewReaderSource("jobs.csv", testJobs))

	var resp struct {
		jobsResponse
		Columns []string `json:"columns"`
	}
	if code := doRequest(t, d, "/jobs", &resp); code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	if resp.Count != 3 || len(resp.Jobs) != 3 {
		t.Fatalf("Expected 3 jobs, got %d (%d)", resp.Count, len(resp.Jobs))
	}
	if resp.Jobs[2]["employer"] != "Enterprise Holdings, Inc" {
		t.Fatalf("Unexpected third job: %v", resp.Jobs[2])
	}
	if resp.Columns[0] != "name" || len(resp.Columns) != 5 {
		t.Fatalf("Unexpected columns: %v", resp.Columns)
	}
}

func TestDaemon_DistinctValues(t *testing.T) {
	d := createTestDaemon(t, source.NewReaderSource("jobs.csv", testJobs))

	var resp struct {
		Column string   `json:"column"`
		Values []string `json:"values"`
	}
	if code := doRequest(t, d, "/columns/position%20type/values", &resp); code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	want := []string{"Data Scientist / Business Intelligence", "Web - Back End", "Web - Full Stack"}
	if resp.Column != "position type" || !slices.Equal(resp.Values, want) {
		t.Fatalf("Expected %v for position type, got %q %v", want, resp.Column, resp.Values)
	}
}

func TestDaemon_Search(t *testing.T) {
	d := createTestDaemon(t, source.NewReaderSource("jobs.csv", testJobs))

	tests := []struct {
		target string
		count  int
	}{
		{"/jobs/search?column=employer&q=ENTERPRISE", 1},
		{"/jobs/search?column=location&q=", 3},
		{"/jobs/search?column=all&q=web", 2},
		{"/jobs/search?q=saint", 1},
		{"/jobs/search", 3},
	}

	for _, tt := range tests {
		var resp jobsResponse
		if code := doRequest(t, d, tt.target, &resp); code != http.StatusOK {
			t.Fatalf("Expected status 200 for %s, got %d", tt.target, code)
		}
		if resp.Count != tt.count || len(resp.Jobs) != tt.count {
			t.Fatalf("Expected %d jobs for %s, got %d", tt.count, tt.target, resp.Count)
		}
	}
}

func TestDaemon_UnknownColumn(t *testing.T) {
	d := createTestDaemon(t, source.NewReaderSource("jobs.csv", testJobs))

	var resp struct {
		Error string `json:"error"`
	}
	if code := doRequest(t, d, "/jobs/search?column=salary&q=1", &resp); code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", code)
	}
	if resp.Error == "" {
		t.Fatal("Expected error message")
	}
	if code := doRequest(t, d, "/columns/salary/values", nil); code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", code)
	}
}

func TestDaemon_LoadFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	d := createTestDaemon(t, source.NewFileSource(missing))

	if code := doRequest(t, d, "/jobs", nil); code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", code)
	}

	var health struct {
		Status string `json:"status"`
		Load   struct {
			Loaded bool   `json:"loaded"`
			Status string `json:"status"`
			Error  string `json:"error"`
		} `json:"load"`
	}
	if code := doRequest(t, d, "/health", &health); code != http.StatusServiceUnavailable {
		t.Fatalf("Expected status 503, got %d", code)
	}
	if health.Status != "not_ready" || health.Load.Loaded || health.Load.Status != "failed" || health.Load.Error == "" {
		t.Fatalf("Unexpected health payload: %+v", health)
	}
}

func TestDaemon_HealthAfterLoad(t *testing.T) {
	d := createTestDaemon(t, source.NewReaderSource("jobs.csv", testJobs))
	if err := d.Store().EnsureLoaded(context.Background()); err != nil {
		t.Fatalf("Failed to load: %v", err)
	}

	var health struct {
		Status string `json:"status"`
		Load   struct {
			Rows   int    `json:"rows"`
			Source string `json:"source"`
		} `json:"load"`
	}
	if code := doRequest(t, d, "/health", &health); code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	if health.Status != "ready" || health.Load.Rows != 3 || health.Load.Source != "jobs.csv" {
		t.Fatalf("Unexpected health payload: %+v", health)
	}
}
