package service

import (
	"github.com/rs/zerolog/log"

	"logcollector/internal/queue"
)

type PipelineStats struct {
	Queue  queue.Stats `json:"queue"`
	Writer WriterStats `json:"writer"`
}

type PipelineMonitor interface {
	Snapshot() PipelineStats
	Report()
}

type pipelineMonitor struct {
	queue  *queue.Queue
	writer LogWriterService
}

func NewPipelineMonitor(q *queue.Queue, writer LogWriterService) PipelineMonitor {
	return &pipelineMonitor{queue: q, writer: writer}
}

func (m *pipelineMonitor) Snapshot() PipelineStats {
	return PipelineStats{
		Queue:  m.queue.Stats(),
		Writer: m.writer.Stats(),
	}
}

// Report logs a snapshot of the pipeline counters.
func (m *pipelineMonitor) Report() {
	s := m.Snapshot()
	log.Info().
		Int("queue_depth", s.Queue.Depth).
		Int("queue_capacity", s.Queue.Capacity).
		Uint64("enqueued", s.Queue.Enqueued).
		Uint64("rejected", s.Queue.Rejected).
		Uint64("evicted", s.Queue.Evicted).
		Uint64("written", s.Writer.Written).
		Uint64("write_failed", s.Writer.Failed).
		Uint64("forward_failed", s.Writer.ForwardFailed).
		Msg("Pipeline stats")
}
