package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"logcollector/internal/model"
)

var (
	ErrFull   = errors.New("ingestion queue is full")
	ErrClosed = errors.New("ingestion queue is closed")
)

type OverflowPolicy string

const (
	// PolicyReject refuses new entries while the queue is at capacity.
	PolicyReject OverflowPolicy = "reject"
	// PolicyDropOldest evicts the head of the queue to make room.
	PolicyDropOldest OverflowPolicy = "drop_oldest"
)

func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyReject:
		return PolicyReject, nil
	case PolicyDropOldest:
		return PolicyDropOldest, nil
	default:
		return "", fmt.Errorf("unknown queue overflow policy %q", s)
	}
}

type Stats struct {
	Depth    int    `json:"depth"`
	Capacity int    `json:"capacity"`
	Enqueued uint64 `json:"enqueued"`
	Rejected uint64 `json:"rejected"`
	Evicted  uint64 `json:"evicted"`
}

// Queue is a FIFO of log entries with many producers and one consumer.
// A capacity of zero means unbounded.
type Queue struct {
	mu       sync.Mutex
	items    []model.LogEntry
	head     int
	capacity int
	policy   OverflowPolicy
	closed   bool
	notify   chan struct{}

	enqueued uint64
	rejected uint64
	evicted  uint64
}

func New(capacity int, policy OverflowPolicy) *Queue {
	if capacity < 0 {
		capacity = 0
	}
	if policy == "" {
		policy = PolicyReject
	}
	return &Queue{
		capacity: capacity,
		policy:   policy,
		notify:   make(chan struct{}, 1),
	}
}

// Enqueue links entry at the tail. It never blocks.
func (q *Queue) Enqueue(entry model.LogEntry) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	if q.capacity > 0 && q.lenLocked() >= q.capacity {
		if q.policy != PolicyDropOldest {
			q.rejected++
			q.mu.Unlock()
			return ErrFull
		}
		q.popLocked()
		q.evicted++
	}
	q.items = append(q.items, entry)
	q.enqueued++
	q.mu.Unlock()

	q.signal()
	return nil
}

// Dequeue blocks until an entry is available. It returns ErrClosed once the
// queue has been closed and drained, or ctx.Err() when ctx is done.
func (q *Queue) Dequeue(ctx context.Context) (model.LogEntry, error) {
	for {
		q.mu.Lock()
		if q.lenLocked() > 0 {
			entry := q.popLocked()
			q.mu.Unlock()
			return entry, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return model.LogEntry{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return model.LogEntry{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Close stops new enqueues. Entries already queued can still be dequeued.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Depth:    q.lenLocked(),
		Capacity: q.capacity,
		Enqueued: q.enqueued,
		Rejected: q.rejected,
		Evicted:  q.evicted,
	}
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue) lenLocked() int {
	return len(q.items) - q.head
}

func (q *Queue) popLocked() model.LogEntry {
	entry := q.items[q.head]
	q.items[q.head] = model.LogEntry{}
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > 64 && q.head*2 >= len(q.items):
		// Compact once the consumed prefix dominates the backing array.
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return entry
}
