package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"focus-prompter/internal/articles"
	"focus-prompter/internal/planning"
	"focus-prompter/internal/tasks"
)

// Store is the subset of the task store the interpreter needs.
type Store interface {
	CreateTask(ctx context.Context, text string, area tasks.Area) (int64, error)
	ListPending(ctx context.Context) ([]tasks.Task, error)
	CompleteTask(ctx context.Context, id int64) (bool, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

// Planner is the planning engine surface used by focus, refocus, win and read.
type Planner interface {
	Focus(ctx context.Context) (string, error)
	SetWinCriteria(ctx context.Context, winCriteria string) (*tasks.DailyPlan, error)
	TodayPlan(ctx context.Context) (*tasks.DailyPlan, error)
	Article() articles.Article
}

type Config struct {
	RefocusLimit int
	MorningTime  string
}

type Interpreter struct {
	store   Store
	planner Planner
	cfg     Config
	log     *slog.Logger
}

func New(store Store, planner Planner, cfg Config, logger *slog.Logger) *Interpreter {
	if cfg.RefocusLimit <= 0 {
		cfg.RefocusLimit = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interpreter{store: store, planner: planner, cfg: cfg, log: logger}
}

// Handle parses text and executes it. An empty reply means "say nothing".
// Only store failures are returned as errors.
func (in *Interpreter) Handle(ctx context.Context, text string) (string, error) {
	intent := Parse(text)
	in.log.DebugContext(ctx, "command parsed", "intent", fmt.Sprintf("%T", intent))
	return in.Dispatch(ctx, intent)
}

func (in *Interpreter) Dispatch(ctx context.Context, intent Intent) (string, error) {
	switch it := intent.(type) {
	case AddIntent:
		return in.add(ctx, it)
	case ListIntent:
		pending, err := in.store.ListPending(ctx)
		if err != nil {
			return "", err
		}
		return "*Your Tasks:*\n" + planning.FormatTaskList(pending), nil
	case CompleteIntent:
		ok, err := in.store.CompleteTask(ctx, it.ID)
		if err != nil {
			return "", err
		}
		if !ok {
			return notFound(it.ID), nil
		}
		in.log.InfoContext(ctx, "task completed", "task_id", it.ID)
		return fmt.Sprintf(":tada: Marked #%d as done!", it.ID), nil
	case DeleteIntent:
		ok, err := in.store.DeleteTask(ctx, it.ID)
		if err != nil {
			return "", err
		}
		if !ok {
			return notFound(it.ID), nil
		}
		in.log.InfoContext(ctx, "task deleted", "task_id", it.ID)
		return fmt.Sprintf(":wastebasket: Deleted task #%d", it.ID), nil
	case FocusIntent:
		return in.planner.Focus(ctx)
	case RefocusIntent:
		return in.refocus(ctx)
	case WinIntent:
		plan, err := in.planner.SetWinCriteria(ctx, it.Criteria)
		var verr *tasks.ValidationError
		if errors.As(err, &verr) {
			return usage(usageWin), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(":star: Got it! Today's win: *%s*\n\nNow go make it happen!", plan.WinCriteria), nil
	case HelpIntent:
		return helpText(in.cfg.MorningTime), nil
	case ReadIntent:
		return articles.Format(in.planner.Article()), nil
	case UsageIntent:
		return usage(it.Command), nil
	case UnknownIntent:
		return fmt.Sprintf("Not sure what you mean. Did you want to add a task?\n`add %s`\n\nType `help` for commands.", it.Text), nil
	case NoopIntent:
		return "", nil
	default:
		return "", fmt.Errorf("unhandled intent %T", intent)
	}
}

type added struct {
	id   int64
	text string
}

func (in *Interpreter) add(ctx context.Context, it AddIntent) (string, error) {
	var created []added
	for _, c := range it.Candidates {
		id, err := in.store.CreateTask(ctx, c.Text, c.Area)
		var verr *tasks.ValidationError
		if errors.As(err, &verr) {
			continue
		}
		if err != nil {
			return "", err
		}
		created = append(created, added{id: id, text: c.Text})
	}
	in.log.InfoContext(ctx, "tasks added", "count", len(created))

	switch len(created) {
	case 0:
		return usage(usageAdd), nil
	case 1:
		return fmt.Sprintf(":white_check_mark: Added: *%s* (#%d)", created[0].text, created[0].id), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, ":white_check_mark: Added %d tasks:\n", len(created))
	for _, a := range created {
		fmt.Fprintf(&b, "  • #%d %s\n", a.id, a.text)
	}
	return b.String(), nil
}

func (in *Interpreter) refocus(ctx context.Context) (string, error) {
	pending, err := in.store.ListPending(ctx)
	if err != nil {
		return "", err
	}
	if len(pending) == 0 {
		return ":thinking_face: You have no pending tasks. Add some with `add [task]`", nil
	}

	plan, err := in.planner.TodayPlan(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(":dart: *Let's refocus.*\n\n")
	if plan != nil && plan.WinCriteria != "" {
		fmt.Fprintf(&b, "This morning you said a win would be: _%s_\n\n", plan.WinCriteria)
	}

	limit := min(in.cfg.RefocusLimit, len(pending))
	b.WriteString("*Your pending tasks:*\n")
	b.WriteString(planning.FormatTaskList(pending[:limit]))
	if extra := len(pending) - limit; extra > 0 {
		fmt.Fprintf(&b, "\n_...and %d more_\n", extra)
	}
	b.WriteString("\n:point_right: *Pick ONE. What's the smallest next step you can take right now?*")
	return b.String(), nil
}

func notFound(id int64) string {
	return fmt.Sprintf("Couldn't find task #%d", id)
}

func usage(command string) string {
	switch command {
	case usageAdd:
		return "Usage: `add [task description]`\n" +
			"Optional: `add [side] task` for side projects\n\n" +
			"You can also add multiple tasks with a bulleted list:\n" +
			"```\nadd\n- Task one\n- Task two\n- Task three\n```"
	case usageDone:
		return "Usage: `done [task_id]` (e.g., `done 3`)"
	case usageDelete:
		return "Usage: `delete [task_id]` (e.g., `delete 3`)"
	case usageWin:
		return "Usage: `win: [what would make today a win]`"
	}
	return "Type `help` for commands."
}

func helpText(morningTime string) string {
	return `:wave: *FocusPrompter Commands*

*Adding & Managing Tasks:*
- ` + "`add [task]`" + ` - Add a new task
- ` + "`add [side] task`" + ` - Add to side projects
- ` + "`list`" + ` - Show all pending tasks
- ` + "`done [id]`" + ` - Mark task complete
- ` + "`delete [id]`" + ` - Remove a task

*Planning & Focus:*
- ` + "`focus`" + ` - Start morning planning
- ` + "`refocus`" + ` - Get back on track
- ` + "`win: [text]`" + ` - Set today's win criteria
- ` + "`read`" + ` - Get today's article recommendation

*Tips:*
- I'll DM you each morning at ` + morningTime + `
- Tasks that carry over get tracked
- If something's stuck for 3+ days, I'll ask why`
}
