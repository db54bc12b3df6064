package planning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"later today", time.Date(2026, 1, 10, 9, 0, 0, 0, pkt), time.Date(2026, 1, 10, 11, 30, 0, 0, pkt)},
		{"exactly now rolls over", time.Date(2026, 1, 10, 11, 30, 0, 0, pkt), time.Date(2026, 1, 11, 11, 30, 0, 0, pkt)},
		{"already passed", time.Date(2026, 1, 10, 23, 0, 0, 0, pkt), time.Date(2026, 1, 11, 11, 30, 0, 0, pkt)},
		{"utc input", time.Date(2026, 1, 10, 5, 0, 0, 0, time.UTC), time.Date(2026, 1, 10, 11, 30, 0, 0, pkt)},
		{"month end", time.Date(2026, 1, 31, 12, 0, 0, 0, pkt), time.Date(2026, 2, 1, 11, 30, 0, 0, pkt)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRun(tt.now, 11, 30, pkt); !got.Equal(tt.want) {
				t.Fatalf("NextRun = %v, want %v", got, tt.want)
			}
		})
	}
}

type countingTrigger struct {
	calls  int
	cancel context.CancelFunc
	stopAt int
}

func (c *countingTrigger) RunDailyTrigger(context.Context) (string, error) {
	c.calls++
	if c.calls >= c.stopAt {
		c.cancel()
	}
	return "", errors.New("store down")
}

func TestSchedulerFiresUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trig := &countingTrigger{cancel: cancel, stopAt: 3}
	s := NewScheduler(trig, 11, 30, time.UTC, slog.New(slog.NewTextHandler(io.Discard, nil)))

	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	var waits []time.Duration
	s.now = func() time.Time { return now }
	s.after = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		now = now.Add(d)
		ch := make(chan time.Time, 1)
		ch <- now
		return ch
	}

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if trig.calls != 3 {
		t.Fatalf("trigger calls = %d, want 3", trig.calls)
	}
	if waits[0] != 150*time.Minute || waits[1] != 24*time.Hour {
		t.Fatalf("waits = %v", waits)
	}
}
