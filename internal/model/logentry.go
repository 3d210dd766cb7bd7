package model

import (
	"fmt"
	"time"
)

// UnknownSource is recorded when a submission carries no program name.
const UnknownSource = "unknown"

type LogEntry struct {
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Render formats the entry as one newline-terminated log file line.
func (e LogEntry) Render() string {
	return fmt.Sprintf("[%s] [%s] %s\n", e.Timestamp.UTC().Format(time.RFC3339Nano), e.Source, e.Text)
}
