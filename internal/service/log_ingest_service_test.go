package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logcollector/internal/daylog"
	"logcollector/internal/model"
	"logcollector/internal/queue"
)

func TestLogIngest_Submit(t *testing.T) {
	q := queue.New(0, queue.PolicyReject)
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	svc := &logIngestService{queue: q, now: fixedClock(now)}

	entry, err := svc.Submit("worker-a", []byte("  boot complete \n"))
	require.NoError(t, err)
	assert.Equal(t, model.LogEntry{Source: "worker-a", Timestamp: now, Text: "boot complete"}, entry)

	queued, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entry, queued)
}

func TestLogIngest_DefaultsSource(t *testing.T) {
	q := queue.New(0, queue.PolicyReject)
	svc := NewLogIngestService(q)

	entry, err := svc.Submit("", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, model.UnknownSource, entry.Source)

	entry, err = svc.Submit("   ", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, model.UnknownSource, entry.Source)

	entry, err = svc.Submit(" worker-b ", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "worker-b", entry.Source)
}

func TestLogIngest_QueueErrors(t *testing.T) {
	q := queue.New(1, queue.PolicyReject)
	svc := NewLogIngestService(q)

	_, err := svc.Submit("a", []byte("1"))
	require.NoError(t, err)
	_, err = svc.Submit("a", []byte("2"))
	assert.ErrorIs(t, err, queue.ErrFull)

	q.Close()
	_, err = svc.Submit("a", []byte("3"))
	assert.ErrorIs(t, err, queue.ErrClosed)
}

func TestLogQuery_DefaultsToToday(t *testing.T) {
	dir := t.TempDir()
	store := daylog.NewStore(dir, 0)
	today := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)
	svc := &logQueryService{store: store, now: fixedClock(today)}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-02-02.log"), []byte("today ERROR\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-02-01.log"), []byte("yesterday error\n"), 0o644))

	lines, err := svc.Tail(context.Background(), time.Time{}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"today ERROR"}, lines)

	lines, err = svc.Search(context.Background(), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "ERROR")
	require.NoError(t, err)
	assert.Equal(t, []string{"yesterday error"}, lines)

	names, err := svc.ListLogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-01.log", "2024-02-02.log"}, names)
}
