package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillscout/internal/cache"
	"github.com/jonathan/skillscout/internal/metrics"
	"github.com/jonathan/skillscout/internal/server/ratelimit"
	"github.com/jonathan/skillscout/internal/types"
)

type fakeJobs struct {
	mu   sync.Mutex
	reqs []types.SearchRequest
	out  []types.JobListing
}

func (f *fakeJobs) Search(_ context.Context, req types.SearchRequest) []types.JobListing {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.out
}

func (f *fakeJobs) last() types.SearchRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

type fakeVideos struct {
	mu   sync.Mutex
	reqs []types.VideoRequest
	out  []types.VideoResource
}

func (f *fakeVideos) Search(_ context.Context, req types.VideoRequest) []types.VideoResource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.out
}

type testServer struct {
	*Server
	jobs   *fakeJobs
	videos *fakeVideos
	store  *cache.Store
	reg    *prometheus.Registry
}

func newTestServer(t *testing.T, rl *ratelimit.Config) *testServer {
	t.Helper()
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	reg := prometheus.NewRegistry()
	ts := &testServer{
		jobs: &fakeJobs{out: []types.JobListing{
			{ID: "1", Title: "Go Developer", EmployerName: "Acme", Location: "Remote", Remote: true},
		}},
		videos: &fakeVideos{out: []types.VideoResource{
			{Title: "Go in 100 seconds", VideoID: "abc", ResourceType: types.ResourceTypeVideo, Free: true},
		}},
		store: cache.New(),
		reg:   reg,
	}
	s, err := New(Config{
		Port:      0,
		Limits:    Limits{DefaultJobLimit: 10, DefaultVideoLimit: 5, MaxLimit: 100},
		Jobs:      ts.jobs,
		Videos:    ts.videos,
		Cache:     ts.store,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		RateLimit: rl,
	})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	ts.Server = s
	return ts
}

func (ts *testServer) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_RequiresServices(t *testing.T) {
	_, err := New(Config{Cache: cache.New()})
	assert.Error(t, err)

	_, err = New(Config{Jobs: &fakeJobs{}, Videos: &fakeVideos{}})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleEcho(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/v1/echo")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, world!", w.Body.String())
}

func TestHandleJobs(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/v1/jobs?query=golang&limit=3&location=Berlin,%20Germany&remote_only=true&job_type=Full-Time")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body JobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Go Developer", body.Jobs[0].Title)

	assert.Equal(t, types.SearchRequest{
		Query:      "golang",
		Limit:      3,
		Location:   "Berlin, Germany",
		RemoteOnly: true,
		JobType:    "full-time",
	}, ts.jobs.last())
}

func TestHandleJobs_DefaultsAndClamp(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/v1/jobs?query=rust")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, ts.jobs.last().Limit)

	w = ts.do(http.MethodGet, "/api/v1/jobs?query=rust&limit=500")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 100, ts.jobs.last().Limit)
}

func TestHandleJobs_EmptyResultIsArray(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.jobs.out = nil

	w := ts.do(http.MethodGet, "/api/v1/jobs?query=cobol")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"jobs":[],"count":0}`, w.Body.String())
}

func TestHandleJobs_Validation(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr string
	}{
		{"missing query", "/api/v1/jobs", "query - is required"},
		{"blank query", "/api/v1/jobs?query=%20%20", "query - is required"},
		{"long query", "/api/v1/jobs?query=" + strings.Repeat("a", 201), "query - must be at most 200"},
		{"zero limit", "/api/v1/jobs?query=go&limit=0", "limit - must be at least 1"},
		{"negative limit", "/api/v1/jobs?query=go&limit=-4", "limit - must be at least 1"},
		{"non-numeric limit", "/api/v1/jobs?query=go&limit=ten", "limit - must be an integer"},
		{"bad remote flag", "/api/v1/jobs?query=go&remote_only=maybe", "remote_only - must be a boolean"},
		{"unknown job type", "/api/v1/jobs?query=go&job_type=gig", "job_type - must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			w := ts.do(http.MethodGet, tt.target)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantErr)
			assert.Empty(t, ts.jobs.reqs)
		})
	}
}

func TestHandleVideos(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/v1/resources/video?query=golang&sorting=views")
	require.Equal(t, http.StatusOK, w.Code)

	var body VideosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "abc", body.Videos[0].VideoID)
	assert.Equal(t, types.VideoRequest{Query: "golang", Limit: 5, Sorting: "views"}, ts.videos.reqs[0])
}

func TestHandleVideos_MissingQuery(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/v1/resources/video?limit=2")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, ts.videos.reqs)
}

func TestHandleCacheClear(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Set("jobs_go_10__false_", []string{"x"})
	ts.store.Set("videos_go_5", []string{"y"})

	w := ts.do(http.MethodPost, "/api/v1/cache/clear")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"cache cleared","removed":2}`, w.Body.String())
	assert.Zero(t, ts.store.Len())

	w = ts.do(http.MethodGet, "/api/v1/cache/clear")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHandleCacheRefresh(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store.Set("videos_go_5", []string{"y"})
	ts.store.Set("videos_rust_5", []string{"z"})

	w := ts.do(http.MethodPost, "/api/v1/cache/refresh/videos_go_5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"cache entry removed","key":"videos_go_5"}`, w.Body.String())
	assert.Equal(t, 1, ts.store.Len())

	// unknown keys are not an error
	w = ts.do(http.MethodPost, "/api/v1/cache/refresh/nope")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodOptions, "/api/v1/jobs")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, ts.jobs.reqs)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/health")
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	ts := newTestServer(t, &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Hour,
	})

	for i := 0; i < 2; i++ {
		w := ts.do(http.MethodGet, "/api/v1/jobs?query=go")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := ts.do(http.MethodGet, "/api/v1/jobs?query=go")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])

	// health stays reachable
	w = ts.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_RefreshKeysShareBucket(t *testing.T) {
	ts := newTestServer(t, &ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(),
	})

	for i := 0; i < 10; i++ {
		w := ts.do(http.MethodPost, fmt.Sprintf("/api/v1/cache/refresh/jobs_k%d", i))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := ts.do(http.MethodPost, "/api/v1/cache/refresh/jobs_fresh_key")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// the search routes keep their own budget
	w = ts.do(http.MethodGet, "/api/v1/jobs?query=go")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, OpenAPIPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	routes := map[string]string{
		"/api/v1/jobs":                "get",
		"/api/v1/resources/video":     "get",
		"/api/v1/cache/clear":         "post",
		"/api/v1/cache/refresh/{key}": "post",
		"/api/v1/echo":                "get",
		"/health":                     "get",
		"/metrics":                    "get",
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, method := range routes {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, "path %s", path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, nil)

	ts.do(http.MethodGet, "/api/v1/jobs?query=go")
	ts.do(http.MethodGet, "/does-not-exist")

	w := ts.do(http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `skillscout_http_requests_total{method="GET",route="GET /api/v1/jobs",status="200"} 1`)
	assert.Contains(t, text, `skillscout_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", s.extractClientID(req))

	req.RemoteAddr = "not-a-hostport"
	assert.Equal(t, "not-a-hostport", s.extractClientID(req))
}
