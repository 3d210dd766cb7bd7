package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"logcollector/internal/daylog"
)

// LogQueryService serves the read paths. A zero day means today (UTC).
type LogQueryService interface {
	Tail(ctx context.Context, day time.Time, lines int) ([]string, error)
	Search(ctx context.Context, day time.Time, query string) ([]string, error)
	ListLogs(ctx context.Context) ([]string, error)
}

type logQueryService struct {
	store daylog.Store
	now   func() time.Time
}

func NewLogQueryService(store daylog.Store) LogQueryService {
	return &logQueryService{
		store: store,
		now:   time.Now,
	}
}

func (s *logQueryService) bucket(day time.Time) string {
	if day.IsZero() {
		day = s.now()
	}
	return s.store.BucketPath(day)
}

func (s *logQueryService) Tail(ctx context.Context, day time.Time, lines int) ([]string, error) {
	path := s.bucket(day)
	log.Debug().Str("file", path).Int("lines", lines).Msg("Tailing log file")
	return s.store.Tail(path, lines)
}

func (s *logQueryService) Search(ctx context.Context, day time.Time, query string) ([]string, error) {
	path := s.bucket(day)
	log.Debug().Str("file", path).Str("query", query).Msg("Searching log file")
	return s.store.Search(path, query)
}

func (s *logQueryService) ListLogs(ctx context.Context) ([]string, error) {
	return s.store.List()
}
