package tasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"focus-prompter/internal/db"
)

const taskColumns = `id, text, area, status, carryover_count, created_at, completed_at`

// Store is the durable task table plus the daily plan table.
type Store struct {
	db  *db.DB
	now func() time.Time
}

func NewStore(d *db.DB) *Store {
	return &Store{db: d, now: time.Now}
}

// WithClock returns a copy of the store that timestamps with now.
func (s *Store) WithClock(now func() time.Time) *Store {
	return &Store{db: s.db, now: now}
}

// CreateTask inserts a pending task and returns its id.
// Empty text is a *ValidationError; an unknown area becomes AreaWork.
func (s *Store) CreateTask(ctx context.Context, text string, area Area) (int64, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return 0, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	area = ParseArea(string(area))

	var id int64
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO tasks (text, area, status, created_at, carryover_count)
		VALUES (?, ?, ?, ?, 0)
		RETURNING id
	`), t, string(area), string(StatusPending), s.now().UTC()).Scan(&id)
	if err != nil {
		return 0, unavailable("task insert", err)
	}
	return id, nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (*Task, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = ?
	`), id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("task get", err)
	}
	return &t, nil
}

// ListPending returns pending tasks in creation order.
func (s *Store) ListPending(ctx context.Context) ([]Task, error) {
	return s.query(ctx, "task list pending", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = ?
		ORDER BY created_at ASC, id ASC
	`, string(StatusPending))
}

func (s *Store) ListByArea(ctx context.Context, area Area) ([]Task, error) {
	return s.query(ctx, "task list by area", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = ? AND area = ?
		ORDER BY created_at ASC, id ASC
	`, string(StatusPending), string(ParseArea(string(area))))
}

// ListStuck returns pending tasks carried over at least minCarryover times.
func (s *Store) ListStuck(ctx context.Context, minCarryover int) ([]Task, error) {
	return s.query(ctx, "task list stuck", `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE status = ? AND carryover_count >= ?
		ORDER BY created_at ASC, id ASC
	`, string(StatusPending), minCarryover)
}

// CompleteTask marks a pending task completed. It reports false when no
// pending task has that id, so a second call is a no-op.
func (s *Store) CompleteTask(ctx context.Context, id int64) (bool, error) {
	return s.exec(ctx, "task complete", `
		UPDATE tasks
		SET status = ?, completed_at = ?
		WHERE id = ? AND status = ?
	`, string(StatusCompleted), s.now().UTC(), id, string(StatusPending))
}

// DeleteTask hard-deletes a task of any status.
func (s *Store) DeleteTask(ctx context.Context, id int64) (bool, error) {
	return s.exec(ctx, "task delete", `DELETE FROM tasks WHERE id = ?`, id)
}

// IncrementCarryover ages a pending task by one day. Missing or completed
// ids are ignored.
func (s *Store) IncrementCarryover(ctx context.Context, id int64) error {
	_, err := s.exec(ctx, "task increment carryover", `
		UPDATE tasks
		SET carryover_count = carryover_count + 1
		WHERE id = ? AND status = ?
	`, id, string(StatusPending))
	return err
}

// AgeTasks increments the carryover of every listed pending task in one
// transaction, so a failed run leaves no task half-aged.
func (s *Store) AgeTasks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`
			UPDATE tasks
			SET carryover_count = carryover_count + 1
			WHERE id = ? AND status = ?
		`))
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, id := range ids {
			if _, err := stmt.ExecContext(ctx, id, string(StatusPending)); err != nil {
				return fmt.Errorf("task %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return unavailable("task age", err)
	}
	return nil
}

// SavePlan upserts the plan for day, replacing focus items and win criteria.
func (s *Store) SavePlan(ctx context.Context, day time.Time, focusItems []string, winCriteria string) (int64, error) {
	if focusItems == nil {
		focusItems = []string{}
	}
	items, err := json.Marshal(focusItems)
	if err != nil {
		return 0, fmt.Errorf("marshal focus items: %w", err)
	}

	now := s.now().UTC()
	var id int64
	err = s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO daily_plans (plan_date, focus_items, win_criteria, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (plan_date) DO UPDATE SET
			focus_items = excluded.focus_items,
			win_criteria = excluded.win_criteria,
			updated_at = excluded.updated_at
		RETURNING id
	`), DateKey(day), string(items), winCriteria, now, now).Scan(&id)
	if err != nil {
		return 0, unavailable("plan upsert", err)
	}
	return id, nil
}

// GetPlan returns the plan for day, or nil if none was saved.
func (s *Store) GetPlan(ctx context.Context, day time.Time) (*DailyPlan, error) {
	key := DateKey(day)
	var (
		p     DailyPlan
		items string
	)
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, focus_items, win_criteria, created_at, updated_at
		FROM daily_plans
		WHERE plan_date = ?
	`), key).Scan(&p.ID, &items, &p.WinCriteria, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("plan get", err)
	}

	p.PlanDate = key
	if err := json.Unmarshal([]byte(items), &p.FocusItems); err != nil {
		return nil, fmt.Errorf("decode focus items for %s: %w", key, err)
	}
	return &p, nil
}

// Stats counts pending tasks and tasks completed in [from, to).
func (s *Store) Stats(ctx context.Context, from, to time.Time) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT COUNT(*) FROM tasks WHERE status = ?
	`), string(StatusPending)).Scan(&st.Pending)
	if err != nil {
		return Stats{}, unavailable("stats pending", err)
	}

	err = s.db.QueryRowContext(ctx, s.db.Rebind(`
		SELECT COUNT(*) FROM tasks
		WHERE status = ? AND completed_at >= ? AND completed_at < ?
	`), string(StatusCompleted), from.UTC(), to.UTC()).Scan(&st.CompletedToday)
	if err != nil {
		return Stats{}, unavailable("stats completed", err)
	}
	return st, nil
}

func (s *Store) query(ctx context.Context, op, query string, args ...any) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	out := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, unavailable(op+" scan", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op+" rows", err)
	}
	return out, nil
}

func (s *Store) exec(ctx context.Context, op, query string, args ...any) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return false, unavailable(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, unavailable(op+" rows affected", err)
	}
	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var (
		t         Task
		area      string
		status    string
		completed sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Text, &area, &status, &t.CarryoverCount, &t.CreatedAt, &completed); err != nil {
		return Task{}, err
	}
	t.Area = Area(area)
	t.Status = Status(status)
	if completed.Valid {
		ct := completed.Time
		t.CompletedAt = &ct
	}
	return t, nil
}
