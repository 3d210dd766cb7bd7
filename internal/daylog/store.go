package daylog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DateLayout       = "2006-01-02"
	FileExt          = ".log"
	DefaultChunkSize = 1024
)

// Store owns the flat directory of per-day log files. Every operation opens
// and closes its file within the call.
type Store interface {
	EnsureDir() error
	Dir() string
	BucketPath(now time.Time) string
	Append(path string, line string) error
	Tail(path string, n int) ([]string, error)
	Search(path string, query string) ([]string, error)
	List() ([]string, error)
}

type dailyFileStore struct {
	dir       string
	chunkSize int
}

func NewStore(dir string, chunkSize int) Store {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &dailyFileStore{
		dir:       dir,
		chunkSize: chunkSize,
	}
}

func (s *dailyFileStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory %s: %w", s.dir, err)
	}
	log.Debug().Str("dir", s.dir).Msg("Log directory ready")
	return nil
}

func (s *dailyFileStore) Dir() string {
	return s.dir
}

// BucketPath maps an instant to its UTC calendar day file.
func (s *dailyFileStore) BucketPath(now time.Time) string {
	return filepath.Join(s.dir, now.UTC().Format(DateLayout)+FileExt)
}

// Append writes line with a single write call so a concurrent reader sees
// either none or all of it.
func (s *dailyFileStore) Append(path string, line string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err = f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}
