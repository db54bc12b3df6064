package planning

import (
	"fmt"
	"strings"

	"focus-prompter/internal/articles"
	"focus-prompter/internal/tasks"
)

// Snapshot is everything one planning message is composed from.
// Pending and Stuck hold carryover counts as read before this run aged them.
type Snapshot struct {
	Pending        []tasks.Task
	Stuck          []tasks.Task
	Article        articles.Article
	StuckThreshold int
}

// Partition splits pending tasks into fresh (never carried over) and
// spillover, preserving order.
func Partition(pending []tasks.Task) (fresh, spillover []tasks.Task) {
	for _, t := range pending {
		if t.CarryoverCount == 0 {
			fresh = append(fresh, t)
		} else {
			spillover = append(spillover, t)
		}
	}
	return fresh, spillover
}

// FocusItems snapshots the text of the first n pending tasks.
func FocusItems(pending []tasks.Task, n int) []string {
	n = max(0, min(n, len(pending)))
	items := make([]string, 0, n)
	for _, t := range pending[:n] {
		items = append(items, t.Text)
	}
	return items
}

// ComposeMorning renders the daily planning message. Section order:
// spillovers, fresh, summary (only with spillovers), stuck, article, prompt.
func ComposeMorning(s Snapshot) string {
	var b strings.Builder
	b.WriteString(":sunrise: *Good morning! Let's plan your day.*\n\n")

	fresh, spillover := Partition(s.Pending)

	if len(spillover) > 0 {
		b.WriteString(":repeat: *Spillovers from previous days:*\n")
		for _, t := range spillover {
			day := t.CarryoverCount + 1
			warning := ""
			if day >= s.StuckThreshold {
				warning = " :warning:"
			}
			fmt.Fprintf(&b, "  - %s _(day %d)_%s\n", t.Text, day, warning)
		}
		b.WriteString("\n")
	}

	if len(fresh) > 0 {
		b.WriteString(":clipboard: *Added yesterday (not yet started):*\n")
		b.WriteString(FormatTaskList(fresh))
		b.WriteString("\n\n")
	}

	if len(spillover) > 0 {
		total := len(s.Pending)
		plural := ""
		if total > 1 {
			plural = "s"
		}
		fmt.Fprintf(&b, "_You have %d pending item%s. %d carried over - consider prioritizing these today._\n\n",
			total, plural, len(spillover))
	}

	if len(s.Stuck) > 0 {
		fmt.Fprintf(&b, ":rotating_light: *Stuck for %d+ days (what's blocking these?):*\n", s.StuckThreshold)
		for _, t := range s.Stuck {
			fmt.Fprintf(&b, "  - %s (day %d)\n", t.Text, t.CarryoverCount+1)
		}
		b.WriteString("\n")
	}

	b.WriteString(articles.Format(s.Article))
	b.WriteString("\n\n")

	b.WriteString("*What would make today a win?*\n")
	b.WriteString("_Reply with your focus for today, or type `add [task]` to add items._")
	return b.String()
}

// FormatTaskList renders tasks one per line with ids, age and area tag.
func FormatTaskList(list []tasks.Task) string {
	if len(list) == 0 {
		return "_No pending tasks._"
	}

	lines := make([]string, 0, len(list))
	for _, t := range list {
		check := ":white_square:"
		if t.Status == tasks.StatusCompleted {
			check = ":white_check_mark:"
		}
		line := fmt.Sprintf("%s *%d*. %s", check, t.ID, t.Text)
		if t.CarryoverCount > 0 {
			line += fmt.Sprintf(" (day %d)", t.CarryoverCount+1)
		}
		if t.Area != tasks.AreaWork {
			line += fmt.Sprintf(" [%s]", t.Area)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
