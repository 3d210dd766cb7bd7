package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"logcollector/internal/model"
	"logcollector/internal/queue"
	"logcollector/internal/util"
)

// LogIngestService turns submissions into entries and queues them. It never
// waits for the entry to reach disk.
type LogIngestService interface {
	Submit(source string, body []byte) (model.LogEntry, error)
}

type logIngestService struct {
	queue *queue.Queue
	now   func() time.Time
}

func NewLogIngestService(q *queue.Queue) LogIngestService {
	return &logIngestService{
		queue: q,
		now:   time.Now,
	}
}

func (s *logIngestService) Submit(source string, body []byte) (model.LogEntry, error) {
	text, err := util.DecodeBody(body)
	if err != nil {
		return model.LogEntry{}, err
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = model.UnknownSource
	}

	entry := model.LogEntry{
		Source:    source,
		Timestamp: s.now().UTC(),
		Text:      text,
	}
	if err := s.queue.Enqueue(entry); err != nil {
		log.Warn().Err(err).Str("source", source).Msg("Rejected log submission")
		return model.LogEntry{}, fmt.Errorf("enqueue log entry: %w", err)
	}
	return entry, nil
}
