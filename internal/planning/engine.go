// Package planning implements the day-boundary planning cycle: aging
// pending tasks, classifying them and composing the morning message.
package planning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"focus-prompter/internal/articles"
	"focus-prompter/internal/tasks"
)

// Store is the subset of the task store the engine reads and writes.
type Store interface {
	ListPending(ctx context.Context) ([]tasks.Task, error)
	ListStuck(ctx context.Context, minCarryover int) ([]tasks.Task, error)
	AgeTasks(ctx context.Context, ids []int64) error
	SavePlan(ctx context.Context, day time.Time, focusItems []string, winCriteria string) (int64, error)
	GetPlan(ctx context.Context, day time.Time) (*tasks.DailyPlan, error)
}

// Notifier delivers the timer-driven planning message.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Config struct {
	StuckThreshold int
	FocusItems     int
	Location       *time.Location
}

type Engine struct {
	store    Store
	articles *articles.List
	notifier Notifier
	cfg      Config
	log      *slog.Logger
	now      func() time.Time
}

func New(store Store, list *articles.List, notifier Notifier, cfg Config, logger *slog.Logger) *Engine {
	if cfg.StuckThreshold <= 0 {
		cfg.StuckThreshold = 3
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if list == nil {
		list = articles.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:    store,
		articles: list,
		notifier: notifier,
		cfg:      cfg,
		log:      logger,
		now:      time.Now,
	}
}

// WithClock replaces the engine's time source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Today is the current time in the configured timezone.
func (e *Engine) Today() time.Time {
	return e.now().In(e.cfg.Location)
}

func (e *Engine) StuckThreshold() int { return e.cfg.StuckThreshold }

func (e *Engine) Article() articles.Article {
	return e.articles.Daily(e.Today())
}

// RunDailyTrigger is the scheduler entry point. It ages every pending task,
// composes the planning message and delivers it. Repeated calls on the same
// day age tasks again.
func (e *Engine) RunDailyTrigger(ctx context.Context) (string, error) {
	runID := ulid.Make().String()
	log := e.log.With("run_id", runID)
	log.InfoContext(ctx, "daily trigger started")

	msg, err := e.plan(ctx, log)
	if err != nil {
		log.ErrorContext(ctx, "daily trigger failed", "err", err)
		return "", err
	}

	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, msg); err != nil {
			log.WarnContext(ctx, "planning message not delivered", "err", err)
			return msg, fmt.Errorf("deliver planning message: %w", err)
		}
	}
	log.InfoContext(ctx, "daily trigger finished")
	return msg, nil
}

// Focus is the manual trigger. It ages tasks exactly like the timer path
// but returns the message instead of delivering it.
func (e *Engine) Focus(ctx context.Context) (string, error) {
	return e.plan(ctx, e.log.With("trigger", "manual"))
}

func (e *Engine) plan(ctx context.Context, log *slog.Logger) (string, error) {
	pending, err := e.store.ListPending(ctx)
	if err != nil {
		return "", fmt.Errorf("list pending: %w", err)
	}
	stuck, err := e.store.ListStuck(ctx, e.cfg.StuckThreshold)
	if err != nil {
		return "", fmt.Errorf("list stuck: %w", err)
	}

	ids := make([]int64, 0, len(pending))
	for _, t := range pending {
		ids = append(ids, t.ID)
	}
	if err := e.store.AgeTasks(ctx, ids); err != nil {
		return "", fmt.Errorf("age pending tasks: %w", err)
	}

	fresh, spillover := Partition(pending)
	log.InfoContext(ctx, "tasks aged",
		"pending", len(pending), "fresh", len(fresh), "spillover", len(spillover), "stuck", len(stuck))

	return ComposeMorning(Snapshot{
		Pending:        pending,
		Stuck:          stuck,
		Article:        e.Article(),
		StuckThreshold: e.cfg.StuckThreshold,
	}), nil
}

// SetWinCriteria saves today's plan: the win criteria plus a snapshot of
// the first pending task texts.
func (e *Engine) SetWinCriteria(ctx context.Context, winCriteria string) (*tasks.DailyPlan, error) {
	win := strings.TrimSpace(winCriteria)
	if win == "" {
		return nil, &tasks.ValidationError{Field: "win_criteria", Reason: "must not be empty"}
	}

	pending, err := e.store.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}
	items := FocusItems(pending, e.cfg.FocusItems)

	today := e.Today()
	id, err := e.store.SavePlan(ctx, today, items, win)
	if err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	e.log.InfoContext(ctx, "win criteria saved", "plan_id", id, "plan_date", tasks.DateKey(today), "focus_items", len(items))

	return &tasks.DailyPlan{
		ID:          id,
		PlanDate:    tasks.DateKey(today),
		FocusItems:  items,
		WinCriteria: win,
	}, nil
}

// TodayPlan returns today's plan, or nil if none was saved.
func (e *Engine) TodayPlan(ctx context.Context) (*tasks.DailyPlan, error) {
	return e.store.GetPlan(ctx, e.Today())
}
