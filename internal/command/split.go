package command

import (
	"regexp"
	"strings"
)

// listMarker matches a bullet ("-", "*", "•") or a numbered marker
// ("1." or "1)") and captures the item text.
var listMarker = regexp.MustCompile(`^[-*•]\s*(.+)$|^(\d+[.)]\s*)(.+)$`)

// SplitTasks splits an add payload into candidate task texts, in input order.
//
// Lines are trimmed and blank lines dropped. Bullet and numbered lines yield
// their item text. A single-line payload without a marker is one task. In a
// multi-line payload, unmarked lines are ignored unless no line had a
// marker, in which case every line is a task. If nothing survives, the whole
// trimmed payload is the task.
func SplitTasks(payload string) []string {
	lines := strings.Split(payload, "\n")

	var out []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := listMarker.FindStringSubmatch(line); m != nil {
			item := m[1]
			if item == "" {
				item = m[3]
			}
			if item != "" {
				out = append(out, strings.TrimSpace(item))
			}
		} else if len(lines) == 1 {
			out = append(out, line)
		}
	}

	if len(out) == 0 && len(lines) > 1 {
		for _, raw := range lines {
			if line := strings.TrimSpace(raw); line != "" {
				out = append(out, line)
			}
		}
	}

	if len(out) == 0 {
		out = []string{strings.TrimSpace(payload)}
	}
	return out
}
