package planning

import (
	"context"
	"log/slog"
	"time"
)

// Trigger is the daily entry point a Scheduler fires.
type Trigger interface {
	RunDailyTrigger(ctx context.Context) (string, error)
}

// Scheduler fires a Trigger once a day at a fixed local wall-clock time.
type Scheduler struct {
	trigger Trigger
	hour    int
	minute  int
	loc     *time.Location
	log     *slog.Logger
	now     func() time.Time
	after   func(time.Duration) <-chan time.Time
}

func NewScheduler(trigger Trigger, hour, minute int, loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		trigger: trigger,
		hour:    hour,
		minute:  minute,
		loc:     loc,
		log:     logger,
		now:     time.Now,
		after:   time.After,
	}
}

// NextRun returns the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}

// Run blocks until ctx is cancelled, firing the trigger once per day.
// Trigger errors are logged; the schedule continues.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		next := NextRun(s.now(), s.hour, s.minute, s.loc)
		s.log.InfoContext(ctx, "next planning run scheduled", "at", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(next.Sub(s.now())):
		}

		if _, err := s.trigger.RunDailyTrigger(ctx); err != nil {
			s.log.ErrorContext(ctx, "scheduled planning run failed", "err", err)
		}
	}
}
