package command

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focus-prompter/internal/articles"
	"focus-prompter/internal/db"
	"focus-prompter/internal/notify"
	"focus-prompter/internal/planning"
	"focus-prompter/internal/tasks"
)

type harness struct {
	in     *Interpreter
	store  *tasks.Store
	engine *planning.Engine
	db     *db.DB
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	d, err := db.Connect(db.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := tasks.NewStore(d).WithClock(clock)
	engine := planning.New(store, articles.Default(), notify.LogNotifier{Logger: logger},
		planning.Config{StuckThreshold: 3, FocusItems: 3, Location: time.UTC}, logger).WithClock(clock)
	in := New(store, engine, Config{RefocusLimit: 5, MorningTime: "11:30"}, logger)
	return &harness{in: in, store: store, engine: engine, db: d}
}

func (h *harness) say(t *testing.T, text string) string {
	t.Helper()
	reply, err := h.in.Handle(context.Background(), text)
	if err != nil {
		t.Fatalf("Handle(%q): %v", text, err)
	}
	return reply
}

func TestAddSingleAndList(t *testing.T) {
	h := newHarness(t)

	if got := h.say(t, "add Buy milk"); got != ":white_check_mark: Added: *Buy milk* (#1)" {
		t.Fatalf("add reply = %q", got)
	}
	h.say(t, "add [side] Refactor module")

	got := h.say(t, "list")
	want := "*Your Tasks:*\n:white_square: *1*. Buy milk\n:white_square: *2*. Refactor module [side_project]"
	if got != want {
		t.Fatalf("list = %q\nwant %q", got, want)
	}
}

func TestBulkAdd(t *testing.T) {
	h := newHarness(t)

	got := h.say(t, "add\n- Buy milk\n- Call Bob\n* Review PR")
	want := ":white_check_mark: Added 3 tasks:\n  • #1 Buy milk\n  • #2 Call Bob\n  • #3 Review PR\n"
	if got != want {
		t.Fatalf("bulk reply = %q\nwant %q", got, want)
	}

	pending, err := h.store.ListPending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 3 || pending[2].Text != "Review PR" {
		t.Fatalf("pending = %+v", pending)
	}
	for _, task := range pending {
		if task.Area != tasks.AreaWork {
			t.Fatalf("task %d area = %q", task.ID, task.Area)
		}
	}
}

func TestAddUsage(t *testing.T) {
	h := newHarness(t)
	for _, in := range []string{"add", "add [side]"} {
		if got := h.say(t, in); !strings.HasPrefix(got, "Usage: `add [task description]`") {
			t.Fatalf("%q reply = %q", in, got)
		}
	}
	if pending, _ := h.store.ListPending(context.Background()); len(pending) != 0 {
		t.Fatalf("usage created tasks: %+v", pending)
	}
}

func TestDoneAndDelete(t *testing.T) {
	h := newHarness(t)
	h.say(t, "add one")
	h.say(t, "add two")

	cases := []struct{ in, want string }{
		{"done 1", ":tada: Marked #1 as done!"},
		{"done 1", "Couldn't find task #1"},
		{"complete #42", "Couldn't find task #42"},
		{"done", "Usage: `done [task_id]` (e.g., `done 3`)"},
		{"delete 2", ":wastebasket: Deleted task #2"},
		{"remove 2", "Couldn't find task #2"},
		{"delete two", "Usage: `delete [task_id]` (e.g., `delete 3`)"},
	}
	for _, tc := range cases {
		if got := h.say(t, tc.in); got != tc.want {
			t.Errorf("%q = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := h.say(t, "list"); got != "*Your Tasks:*\n_No pending tasks._" {
		t.Fatalf("list = %q", got)
	}
}

func TestWinSavesPlanAndRefocusShowsIt(t *testing.T) {
	h := newHarness(t)

	if got := h.say(t, "refocus"); got != ":thinking_face: You have no pending tasks. Add some with `add [task]`" {
		t.Fatalf("empty refocus = %q", got)
	}

	for _, text := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		h.say(t, "add task "+text)
	}

	got := h.say(t, "win: Ship the release")
	if got != ":star: Got it! Today's win: *Ship the release*\n\nNow go make it happen!" {
		t.Fatalf("win reply = %q", got)
	}
	plan, err := h.engine.TodayPlan(context.Background())
	if err != nil || plan == nil {
		t.Fatalf("TodayPlan: %v %v", plan, err)
	}
	if len(plan.FocusItems) != 3 || plan.FocusItems[0] != "task a" {
		t.Fatalf("focus items = %v", plan.FocusItems)
	}

	got = h.say(t, "stuck")
	for _, want := range []string{
		":dart: *Let's refocus.*\n\n",
		"This morning you said a win would be: _Ship the release_\n\n",
		"*5*. task e",
		"\n_...and 2 more_\n",
		":point_right: *Pick ONE.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("refocus missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "task f") {
		t.Fatalf("refocus listed more than the limit:\n%s", got)
	}

	if got := h.say(t, "win:"); got != "Usage: `win: [what would make today a win]`" {
		t.Fatalf("win usage = %q", got)
	}
}

func TestFocusDoesNotSavePlan(t *testing.T) {
	h := newHarness(t)
	h.say(t, "add Buy milk")

	got := h.say(t, "focus")
	if !strings.HasPrefix(got, ":sunrise: *Good morning!") || !strings.Contains(got, "Buy milk") {
		t.Fatalf("focus = %q", got)
	}
	if plan, _ := h.engine.TodayPlan(context.Background()); plan != nil {
		t.Fatalf("focus saved a plan: %+v", plan)
	}
}

func TestHelpReadAndFallback(t *testing.T) {
	h := newHarness(t)

	if got := h.say(t, "help"); !strings.Contains(got, "I'll DM you each morning at 11:30") {
		t.Fatalf("help = %q", got)
	}
	if got := h.say(t, "read"); got != articles.Format(h.engine.Article()) {
		t.Fatalf("read = %q", got)
	}

	want := "Not sure what you mean. Did you want to add a task?\n`add buy eggs`\n\nType `help` for commands."
	if got := h.say(t, "buy eggs"); got != want {
		t.Fatalf("fallback = %q", got)
	}
	if pending, _ := h.store.ListPending(context.Background()); len(pending) != 0 {
		t.Fatalf("fallback created tasks: %+v", pending)
	}

	for _, in := range []string{"ok", "/who", ""} {
		if got := h.say(t, in); got != "" {
			t.Fatalf("%q reply = %q, want silence", in, got)
		}
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	h := newHarness(t)
	_ = h.db.Close()

	_, err := h.in.Handle(context.Background(), "list")
	if !errors.Is(err, tasks.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
	_, err = h.in.Handle(context.Background(), "add Buy milk")
	if !errors.Is(err, tasks.ErrStoreUnavailable) {
		t.Fatalf("add err = %v", err)
	}
}
