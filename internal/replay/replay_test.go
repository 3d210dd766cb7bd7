package replay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu       sync.Mutex
	bodies   []string
	programs []string
	busyLeft int
	status   int
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busyLeft > 0 {
		c.busyLeft--
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if c.status != 0 {
		w.WriteHeader(c.status)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
		return
	}
	body, _ := io.ReadAll(r.Body)
	c.bodies = append(c.bodies, string(body))
	c.programs = append(c.programs, r.Header.Get("X-Program"))
	_, _ = w.Write([]byte(`{"status":"queued"}`))
}

func newReplayer(url string) *Replayer {
	r := New(url+"/", "importer", time.Second)
	r.retryBase = time.Millisecond
	return r
}

func TestReplay_SendsNonBlankLines(t *testing.T) {
	c := &collector{}
	srv := httptest.NewServer(c)
	defer srv.Close()

	sent, err := newReplayer(srv.URL).Replay(context.Background(), strings.NewReader("first\n\n  \nsecond\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []string{"first", "second"}, c.bodies)
	assert.Equal(t, []string{"importer", "importer"}, c.programs)
}

func TestReplay_RetriesWhenBusy(t *testing.T) {
	c := &collector{busyLeft: 2}
	srv := httptest.NewServer(c)
	defer srv.Close()

	sent, err := newReplayer(srv.URL).Replay(context.Background(), strings.NewReader("only\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"only"}, c.bodies)
}

func TestReplay_StopsOnServerError(t *testing.T) {
	c := &collector{status: http.StatusInternalServerError}
	srv := httptest.NewServer(c)
	defer srv.Close()

	sent, err := newReplayer(srv.URL).Replay(context.Background(), strings.NewReader("a\nb\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Equal(t, 0, sent)
}
