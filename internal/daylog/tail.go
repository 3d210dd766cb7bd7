package daylog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tail returns the last n lines of the file at path in file order, reading
// backward from the end in chunkSize pieces. A missing file yields no lines.
func (s *dailyFileStore) Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	pos := info.Size()
	var chunks [][]byte
	// complete counts newlines read so far, less the file's trailing one.
	complete, total := 0, 0
	for pos > 0 && complete < n {
		size := int64(s.chunkSize)
		if pos < size {
			size = pos
		}
		pos -= size
		chunk := make([]byte, size)
		if _, err := f.ReadAt(chunk, pos); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read %s at offset %d: %w", path, pos, err)
		}
		if len(chunks) == 0 && chunk[size-1] == '\n' {
			complete--
		}
		complete += bytes.Count(chunk, []byte{'\n'})
		total += int(size)
		chunks = append(chunks, chunk)
	}

	// Chunks were collected from the end of the file backward.
	data := make([]byte, 0, total)
	for i := len(chunks) - 1; i >= 0; i-- {
		data = append(data, chunks[i]...)
	}

	lines := splitLines(data, pos > 0)
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

func splitLines(data []byte, partialHead bool) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return []string{}
	}
	parts := strings.Split(text, "\n")
	if partialHead {
		parts = parts[1:]
	}
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = strings.TrimSpace(p)
	}
	return lines
}
