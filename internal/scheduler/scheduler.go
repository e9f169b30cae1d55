// Package scheduler triggers the daily stats post.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/usemate/statsbot/internal/logger"
)

// Scheduler runs a job on a cron schedule. Job errors are logged and the
// schedule keeps running; a failed daily post should not take the bot
// down.
type Scheduler struct {
	cron *cron.Cron
}

// New builds a Scheduler around the given job and cron spec (standard
// five-field syntax, e.g. "0 9 * * *" for 09:00 every day).
func New(spec string, job func(ctx context.Context) error) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := job(context.Background()); err != nil {
			logger.L().Error().Err(err).Msg("scheduled job failed")
			return
		}
		logger.L().Info().Msg("scheduled job done")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins the schedule in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule; running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
