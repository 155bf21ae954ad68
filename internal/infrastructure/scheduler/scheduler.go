// Package scheduler runs the mirror and archive jobs on cron timers, outside
// the request path. A failing or panicking run is logged and the schedule
// continues; nothing here can take the process down or block a request.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const defaultJobTimeout = 5 * time.Minute

// Scheduler wraps a cron runner with per-job timeouts and panic recovery.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), log: log}
}

// Register adds a job under the given cron spec. Each run gets its own
// timeout-bound context.
func (s *Scheduler) Register(spec, name string, timeout time.Duration, job func(context.Context) error) error {
	if timeout <= 0 {
		timeout = defaultJobTimeout
	}

	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Str("job", name).Interface("panic", r).Msg("scheduled job panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("scheduled job failed")
			return
		}
		s.log.Info().Str("job", name).Dur("took", time.Since(start)).Msg("scheduled job completed")
	})
	return err
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
