package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_Render(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 600000000, time.FixedZone("X", 3600))
	entry := LogEntry{Source: "worker-a", Timestamp: ts, Text: "boot complete"}

	assert.Equal(t, "[2024-01-02T02:04:05.6Z] [worker-a] boot complete\n", entry.Render())
}
