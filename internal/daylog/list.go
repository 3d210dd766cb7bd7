package daylog

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// List returns the daily log file names in the directory. The date-based
// names sort chronologically.
func (s *dailyFileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory %s: %w", s.dir, err)
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), FileExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
