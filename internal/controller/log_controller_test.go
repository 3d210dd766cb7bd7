package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logcollector/config"
	"logcollector/internal/daylog"
	"logcollector/internal/dto"
	"logcollector/internal/kafka"
	"logcollector/internal/queue"
	"logcollector/internal/service"
)

type testServer struct {
	router *gin.Engine
	store  daylog.Store
	queue  *queue.Queue
	writer service.LogWriterService
}

func newTestServer(t *testing.T, capacity int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store := daylog.NewStore(dir, 16)
	q := queue.New(capacity, queue.PolicyReject)
	writer := service.NewLogWriterService(q, store, kafka.NewNoopForwarder())
	cfg := &config.Config{Tail: config.TailConfig{DefaultLines: 50}}

	c := NewLogController(cfg,
		service.NewLogIngestService(q),
		service.NewLogQueryService(store),
		service.NewPipelineMonitor(q, writer),
	)
	router := gin.New()
	router.Use(RequestID(), RequestLogger())
	RegisterLogRoutes(router, c)

	return &testServer{router: router, store: store, queue: q, writer: writer}
}

func (s *testServer) startWriter(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go s.writer.Run(ctx, &wg)
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
}

func (s *testServer) do(method, target string, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeLines(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var lines []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	return lines
}

func TestEndToEnd_PostThenTail(t *testing.T) {
	s := newTestServer(t, 0)
	s.startWriter(t)

	w := s.do(http.MethodPost, "/log", "boot complete", map[string]string{"X-Program": "worker-a"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"queued"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Eventually(t, func() bool {
		return s.writer.Stats().Written == 1
	}, 2*time.Second, 10*time.Millisecond)

	w = s.do(http.MethodGet, "/tail?lines=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := decodeLines(t, w)
	require.Len(t, lines, 1)
	assert.Regexp(t, regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T[^\]]+Z\] \[worker-a\] boot complete$`), lines[0])
}

func TestReceiveLog_UnknownSource(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(http.MethodPost, "/log", "  hello  ", nil)
	require.Equal(t, http.StatusOK, w.Code)

	entry, err := s.queue.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unknown", entry.Source)
	assert.Equal(t, "hello", entry.Text)
}

func TestReceiveLog_QueueFull(t *testing.T) {
	s := newTestServer(t, 1)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/log", "one", nil).Code)
	w := s.do(http.MethodPost, "/log", "two", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "full")
}

func TestTail_MissingFileAndDefaults(t *testing.T) {
	s := newTestServer(t, 0)

	w := s.do(http.MethodGet, "/tail", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/tail?lines=abc", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/tail?lines=-3", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/tail?date=someday", "", nil).Code)
}

func TestTail_DefaultLineCount(t *testing.T) {
	s := newTestServer(t, 0)
	path := s.store.BucketPath(time.Now())
	for i := 0; i < 60; i++ {
		require.NoError(t, s.store.Append(path, "line\n"))
	}

	w := s.do(http.MethodGet, "/tail", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeLines(t, w), 50)
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, 0)
	path := s.store.BucketPath(time.Now())
	require.NoError(t, s.store.Append(path, "[t] [api] disk error\n"))
	require.NoError(t, s.store.Append(path, "[t] [api] all good\n"))

	w := s.do(http.MethodGet, "/search?q=ERROR", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"[t] [api] disk error"}, decodeLines(t, w))

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/search", "", nil).Code)
}

func TestSearch_PastDay(t *testing.T) {
	s := newTestServer(t, 0)
	require.NoError(t, os.WriteFile(filepath.Join(s.store.Dir(), "2024-01-01.log"), []byte("old error\n"), 0o644))

	w := s.do(http.MethodGet, "/search?q=error&date=2024-01-01", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"old error"}, decodeLines(t, w))
}

func TestListLogs(t *testing.T) {
	s := newTestServer(t, 0)
	for _, name := range []string{"2024-01-02.log", "2024-01-01.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(s.store.Dir(), name), nil, 0o644))
	}

	w := s.do(http.MethodGet, "/logs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2024-01-01.log", "2024-01-02.log"}, decodeLines(t, w))
}

func TestListLogs_DirectoryGone(t *testing.T) {
	s := newTestServer(t, 0)
	require.NoError(t, os.RemoveAll(s.store.Dir()))

	w := s.do(http.MethodGet, "/logs", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 5)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/log", "x", nil).Code)

	w := s.do(http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Pipeline.Queue.Depth)
	assert.Equal(t, 5, resp.Pipeline.Queue.Capacity)
}
