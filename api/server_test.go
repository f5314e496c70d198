package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chartd/config"
	"chartd/core/journal"
	"chartd/core/render"
	"chartd/core/utils"
)

const testBarPayload = `[
  {"optionType": "bar", "data": {"labels": ["single", "double"], "datasets": [
    {"label": "40L", "data": [10, 5], "backgroundColor": "#4e79a7"}
  ]}},
  {"optionType": "pie", "data": {"labels": ["x"], "datasets": [{"data": [1]}]}}
]`

const testRadarPayload = `{
  "optionType": "radar",
  "data": {"labels": ["APM", "PPS", "VS"], "datasets": [{"label": "me", "data": [0.2, 0.5, 0.9]}]},
  "min": [0, 0, 0], "max": [100, 2, 300],
  "formatTypes": ["round", "toFixed2", "round"]
}`

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		AppEnv: "dev",
		Render: config.RenderConfig{
			JobTimeout:   10 * time.Second,
			MaxItems:     8,
			MaxPixels:    4 << 20,
			MaxBodyBytes: 1 << 20,
			Background:   render.DefaultBackground,
		},
		Observability: config.ObservabilityConfig{MetricsEnabled: true},
	}
}

func newTestServer(t *testing.T, cfg *config.AppConfig, withJournal bool) *Server {
	t.Helper()
	logger := utils.NewLogger()
	if !withJournal {
		return NewServer(cfg, logger, ServerDeps{})
	}
	jcfg := config.JournalConfig{Enabled: true, Driver: journal.DriverSQLite, Path: filepath.Join(t.TempDir(), "journal.db")}
	db, dialect, err := journal.OpenDB(jcfg, logger)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := journal.Migrate(context.Background(), db, dialect, logger); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	store := journal.NewStore(db)
	return NewServer(cfg, logger, ServerDeps{
		DB:      db,
		Journal: store,
		Pruner:  journal.NewPruner(store, time.Hour, "@hourly", logger),
	})
}

func postRender(s *Server, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decodeDataURI(t *testing.T, body string) (int, int) {
	t.Helper()
	if !strings.HasPrefix(body, render.DataURIPrefix) {
		t.Fatalf("body is not a png data uri: %.40q", body)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(body, render.DataURIPrefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRenderReturnsDataURI(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	rr := postRender(s, "/api/render?width=200&height=200", testRadarPayload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if rr.Header().Get("X-Render-Job") == "" {
		t.Fatalf("missing job header")
	}
	if w, h := decodeDataURI(t, rr.Body.String()); w != 200 || h != 200 {
		t.Fatalf("expected 200x200, got %dx%d", w, h)
	}
}

func TestRenderRootPathReportsSkippedItems(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	rr := postRender(s, "/?width=300&height=200", testBarPayload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("X-Render-Skipped"); got != "1" {
		t.Fatalf("expected skipped item 1, got %q", got)
	}
	if w, h := decodeDataURI(t, rr.Body.String()); w != 600 || h != 200 {
		t.Fatalf("expected 600x200, got %dx%d", w, h)
	}
}

func TestRenderRejectsBadRequests(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	cases := []struct {
		name string
		path string
		body string
	}{
		{"unknown top-level", "/api/render?width=100&height=100", `{"optionType":"pie","data":{"labels":[],"datasets":[]}}`},
		{"missing width", "/api/render?height=100", testRadarPayload},
		{"negative height", "/api/render?width=100&height=-1", testRadarPayload},
		{"not json", "/api/render?width=100&height=100", `nope`},
		{"radar array", "/api/render?width=100&height=100", "[" + testRadarPayload + "," + testRadarPayload + "]"},
		{"wrapping dimensions", "/api/render?width=4294967296&height=4294967296", testRadarPayload},
		{"wrapping bar tiles", "/?width=4294967296&height=4294967296", testBarPayload},
		{"over pixel limit", "/api/render?width=4096&height=2048", testRadarPayload},
	}
	for _, tc := range cases {
		rr := postRender(s, tc.path, tc.body)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, rr.Code)
		}
		if strings.HasPrefix(rr.Body.String(), render.DataURIPrefix) {
			t.Fatalf("%s: error response carried an image", tc.name)
		}
	}
}

func TestRenderPayloadTooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Render.MaxBodyBytes = 16
	s := newTestServer(t, cfg, false)
	rr := postRender(s, "/api/render?width=100&height=100", testRadarPayload)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestRenderRecordsJournalEntry(t *testing.T) {
	s := newTestServer(t, testConfig(), true)
	rr := postRender(s, "/api/render?width=300&height=200", testBarPayload)
	if rr.Code != http.StatusOK {
		t.Fatalf("render: %d %s", rr.Code, rr.Body.String())
	}
	jobID := rr.Header().Get("X-Render-Job")

	list := httptest.NewRecorder()
	s.Handler().ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/jobs?limit=5", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("list: %d", list.Code)
	}
	var payload struct {
		Items []journal.Entry `json:"items"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ID != jobID {
		t.Fatalf("unexpected journal: %+v", payload.Items)
	}
	e := payload.Items[0]
	if e.Kind != "bar" || e.Items != 2 || e.Outcome != "ok" || len(e.Skipped) != 1 || e.Skipped[0] != 1 {
		t.Fatalf("unexpected entry: %+v", e)
	}

	one := httptest.NewRecorder()
	s.Handler().ServeHTTP(one, httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID, nil))
	if one.Code != http.StatusOK {
		t.Fatalf("get: %d", one.Code)
	}
	missing := httptest.NewRecorder()
	s.Handler().ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job, got %d", missing.Code)
	}
}

func TestJobsDisabledWithoutJournal(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	h := s.recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, testConfig(), false)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
}
