package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"logcollector/internal/daylog"
	"logcollector/internal/kafka"
	"logcollector/internal/model"
	"logcollector/internal/queue"
)

type WriterStats struct {
	Written       uint64 `json:"written"`
	Failed        uint64 `json:"failed"`
	ForwardFailed uint64 `json:"forward_failed"`
}

// LogWriterService is the single consumer of the ingestion queue and the
// only writer of daily log files.
type LogWriterService interface {
	Run(ctx context.Context, wg *sync.WaitGroup)
	Stats() WriterStats
}

type logWriterService struct {
	queue     *queue.Queue
	store     daylog.Store
	forwarder kafka.LogForwarder
	now       func() time.Time

	written       atomic.Uint64
	failed        atomic.Uint64
	forwardFailed atomic.Uint64
}

func NewLogWriterService(q *queue.Queue, store daylog.Store, forwarder kafka.LogForwarder) LogWriterService {
	return newLogWriterService(q, store, forwarder, time.Now)
}

func newLogWriterService(q *queue.Queue, store daylog.Store, forwarder kafka.LogForwarder, now func() time.Time) *logWriterService {
	if forwarder == nil {
		forwarder = kafka.NewNoopForwarder()
	}
	return &logWriterService{
		queue:     q,
		store:     store,
		forwarder: forwarder,
		now:       now,
	}
}

// Run writes entries until the queue is closed and drained or ctx is
// cancelled. Per-entry failures never stop the loop.
func (s *logWriterService) Run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	log.Info().Msg("Starting log writer loop...")

	for {
		if ctx.Err() != nil {
			log.Info().Int("abandoned", s.queue.Len()).Msg("Log writer loop stopping due to context cancellation.")
			return
		}
		entry, err := s.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrClosed) {
				log.Info().Uint64("written", s.written.Load()).Msg("Ingestion queue drained, log writer loop stopping.")
				return
			}
			log.Info().Int("abandoned", s.queue.Len()).Msg("Log writer loop stopping due to context cancellation.")
			return
		}
		s.write(ctx, entry)
	}
}

func (s *logWriterService) write(ctx context.Context, entry model.LogEntry) {
	// The bucket follows the clock at write time, not entry.Timestamp, so an
	// entry captured just before midnight can land in the next day's file.
	path := s.store.BucketPath(s.now())
	if err := s.store.Append(path, entry.Render()); err != nil {
		s.failed.Add(1)
		log.Error().Err(err).Str("file", path).Str("source", entry.Source).Msg("Log write failed, dropping entry")
		return
	}
	s.written.Add(1)
	log.Trace().Str("file", path).Str("source", entry.Source).Msg("Wrote log entry")

	if err := s.forwarder.Forward(ctx, entry); err != nil {
		s.forwardFailed.Add(1)
		log.Warn().Err(err).Str("source", entry.Source).Msg("Failed to forward log entry")
	}
}

func (s *logWriterService) Stats() WriterStats {
	return WriterStats{
		Written:       s.written.Load(),
		Failed:        s.failed.Load(),
		ForwardFailed: s.forwardFailed.Load(),
	}
}
