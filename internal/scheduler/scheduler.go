package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"logcollector/config"
	"logcollector/internal/service"
)

func newCron() *cron.Cron {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return cron.New(cron.WithParser(parser))
}

// NewScheduler schedules the periodic pipeline stats report. It returns nil
// when no schedule is configured.
func NewScheduler(lc fx.Lifecycle, cfg *config.Config, monitor service.PipelineMonitor) (*cron.Cron, error) {
	schedule := cfg.Stats.Schedule
	if schedule == "" {
		log.Info().Msg("Stats schedule not configured, periodic report disabled")
		return nil, nil
	}

	c := newCron()
	if _, err := c.AddFunc(schedule, monitor.Report); err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("Failed to add cron job")
		return nil, err
	}
	log.Info().Str("schedule", schedule).Msg("Scheduled pipeline stats report")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msg("Starting cron scheduler")
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping cron scheduler...")
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
				log.Info().Msg("Cron scheduler stopped gracefully.")
				return nil
			case <-ctx.Done():
				log.Error().Msg("Context cancelled while waiting for cron scheduler to stop.")
				return ctx.Err()
			}
		},
	})

	return c, nil
}
