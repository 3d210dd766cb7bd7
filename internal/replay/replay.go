package replay

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/rs/zerolog/log"
)

var errBusy = errors.New("collector busy")

// Replayer submits lines to a running collector's /log endpoint, one request
// per line.
type Replayer struct {
	client     *http.Client
	endpoint   string
	program    string
	maxRetries uint64
	retryBase  time.Duration
}

func New(baseURL, program string, timeout time.Duration) *Replayer {
	return &Replayer{
		client:     &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(baseURL, "/") + "/log",
		program:    program,
		maxRetries: 5,
		retryBase:  200 * time.Millisecond,
	}
}

// Replay sends every non-blank line read from r. A 503 from the collector is
// retried with exponential backoff; other failures abort the replay.
func (r *Replayer) Replay(ctx context.Context, in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	sent := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := r.sendWithRetry(ctx, line); err != nil {
			return sent, fmt.Errorf("line %d: %w", lineNo, err)
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		return sent, fmt.Errorf("error reading input: %w", err)
	}
	return sent, nil
}

func (r *Replayer) sendWithRetry(ctx context.Context, line string) error {
	var fatal error
	operation := func() error {
		err := r.send(ctx, line)
		if errors.Is(err, errBusy) {
			log.Debug().Msg("Collector busy, retrying")
			return err
		}
		fatal = err
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.retryBase
	if err := backoff.Retry(operation, backoff.WithMaxRetries(b, r.maxRetries)); err != nil {
		return err
	}
	return fatal
}

func (r *Replayer) send(ctx context.Context, line string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(line))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if r.program != "" {
		req.Header.Set("X-Program", r.program)
	}

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	switch {
	case res.StatusCode == http.StatusOK:
		return nil
	case res.StatusCode == http.StatusServiceUnavailable:
		return errBusy
	default:
		return fmt.Errorf("collector returned %s: %s", res.Status, strings.TrimSpace(string(body)))
	}
}
