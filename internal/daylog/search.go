package daylog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Search scans the file at path and returns every line containing query,
// ignoring case. Lines may be of any length. A missing file yields no lines.
func (s *dailyFileStore) Search(path string, query string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	needle := strings.ToLower(query)
	results := []string{}
	reader := bufio.NewReaderSize(f, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading file %s: %w", path, err)
		}
		eof := err != nil
		if eof && line == "" {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		if strings.Contains(strings.ToLower(line), needle) {
			results = append(results, strings.TrimSpace(line))
		}
		if eof {
			break
		}
	}
	return results, nil
}
