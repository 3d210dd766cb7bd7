package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"logcollector/internal/logging"
	"logcollector/internal/replay"
)

var (
	serverURL string
	program   string
	timeout   time.Duration
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "logreplay [file]",
	Short: "Replay a text file into a running log collector",
	Long: `Reads a plain text file and submits each non-blank line to the
collector's POST /log endpoint. Reads stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8000", "collector base URL")
	rootCmd.Flags().StringVarP(&program, "program", "p", "replay", "value sent in the X-Program header")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReplay(cmd *cobra.Command, args []string) error {
	logging.Setup(logLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := os.Stdin
	source := "stdin"
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
		source = args[0]
	}

	start := time.Now()
	sent, err := replay.New(serverURL, program, timeout).Replay(ctx, in)
	log.Info().Str("input", source).Int("sent", sent).Dur("duration", time.Since(start)).Msg("Replay finished")
	return err
}
