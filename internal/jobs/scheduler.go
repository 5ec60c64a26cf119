// Package jobs runs periodic maintenance work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"roomcalendar/internal/domain"
)

// DefaultReaperSchedule runs the orphan reaper at the top of every hour.
const DefaultReaperSchedule = "@hourly"

const reaperTimeout = 2 * time.Minute

type Scheduler struct {
	cron   *cron.Cron
	reaper domain.OrphanReaper
	logger *slog.Logger
}

// NewScheduler registers the orphan reaper on schedule (standard five-field spec or a
// descriptor such as @hourly). An invalid schedule is an error.
func NewScheduler(schedule string, reaper domain.OrphanReaper, logger *slog.Logger) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultReaperSchedule
	}
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reaper: reaper,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.ReapOnce); err != nil {
		return nil, fmt.Errorf("invalid reaper schedule %q: %w", schedule, err)
	}
	return s, nil
}

// ReapOnce runs one reaper pass. Failures are logged and retried on the next tick.
func (s *Scheduler) ReapOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reaperTimeout)
	defer cancel()
	n, err := s.reaper.ReapOrphanEvents(ctx)
	if err != nil {
		s.logger.Error("orphan reaper failed", "err", err)
		return
	}
	if n > 0 {
		s.logger.Info("orphan reaper removed events", "count", n)
	}
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for a running pass to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Next reports the next scheduled run, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
