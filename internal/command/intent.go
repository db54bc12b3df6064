// Package command turns one inbound chat message into an Intent and
// executes it against the task store and planning engine.
package command

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"focus-prompter/internal/tasks"
)

// Intent is one parsed command. The concrete types below are the only
// implementations.
type Intent interface {
	intent()
}

// Candidate is one task to create from an add payload.
type Candidate struct {
	Text string
	Area tasks.Area
}

type (
	AddIntent      struct{ Candidates []Candidate }
	ListIntent     struct{}
	CompleteIntent struct{ ID int64 }
	DeleteIntent   struct{ ID int64 }
	FocusIntent    struct{}
	RefocusIntent  struct{}
	WinIntent      struct{ Criteria string }
	HelpIntent     struct{}
	ReadIntent     struct{}
	// UsageIntent asks for the usage hint of a command given bad arguments.
	UsageIntent struct{ Command string }
	// UnknownIntent is free text that might be a task; it is never added.
	UnknownIntent struct{ Text string }
	// NoopIntent gets no reply.
	NoopIntent struct{}
)

func (AddIntent) intent()      {}
func (ListIntent) intent()     {}
func (CompleteIntent) intent() {}
func (DeleteIntent) intent()   {}
func (FocusIntent) intent()    {}
func (RefocusIntent) intent()  {}
func (WinIntent) intent()      {}
func (HelpIntent) intent()     {}
func (ReadIntent) intent()     {}
func (UsageIntent) intent()    {}
func (UnknownIntent) intent()  {}
func (NoopIntent) intent()     {}

const (
	usageAdd    = "add"
	usageDone   = "done"
	usageDelete = "delete"
	usageWin    = "win"
)

var (
	listWords    = []string{"list", "tasks", "show", "ls"}
	focusWords   = []string{"focus", "morning", "plan", "start"}
	refocusWords = []string{"refocus", "stuck", "help me focus"}
	helpWords    = []string{"help", "?", "commands"}
	readWords    = []string{"read", "article", "reading"}
)

// Parse maps raw message text to an Intent. Keywords are case-insensitive;
// task text keeps its case. The first matching rule wins.
func Parse(raw string) Intent {
	text := strings.TrimSpace(raw)
	lower := strings.ToLower(text)

	if rest, ok := cutKeyword(text, "add"); ok {
		if rest == "" {
			return UsageIntent{Command: usageAdd}
		}
		candidates := make([]Candidate, 0, 1)
		for _, c := range SplitTasks(rest) {
			if cand := ParseTag(c); cand.Text != "" {
				candidates = append(candidates, cand)
			}
		}
		if len(candidates) == 0 {
			return UsageIntent{Command: usageAdd}
		}
		return AddIntent{Candidates: candidates}
	}

	if oneOf(lower, listWords) {
		return ListIntent{}
	}

	for _, kw := range []string{"done", "complete"} {
		if rest, ok := cutKeyword(text, kw); ok {
			id, ok := parseID(rest)
			if !ok {
				return UsageIntent{Command: usageDone}
			}
			return CompleteIntent{ID: id}
		}
	}

	for _, kw := range []string{"delete", "remove"} {
		if rest, ok := cutKeyword(text, kw); ok {
			id, ok := parseID(rest)
			if !ok {
				return UsageIntent{Command: usageDelete}
			}
			return DeleteIntent{ID: id}
		}
	}

	if oneOf(lower, focusWords) {
		return FocusIntent{}
	}
	if oneOf(lower, refocusWords) {
		return RefocusIntent{}
	}

	if hasPrefixFold(text, "win:") || hasPrefixFold(text, "today:") {
		_, criteria, _ := strings.Cut(text, ":")
		criteria = strings.TrimSpace(criteria)
		if criteria == "" {
			return UsageIntent{Command: usageWin}
		}
		return WinIntent{Criteria: criteria}
	}

	if oneOf(lower, helpWords) {
		return HelpIntent{}
	}
	if oneOf(lower, readWords) {
		return ReadIntent{}
	}

	if utf8.RuneCountInString(text) > 3 && !strings.HasPrefix(text, "/") {
		return UnknownIntent{Text: text}
	}
	return NoopIntent{}
}

// ParseTag strips a leading "[side]" or "[project]" tag, which routes the
// task to the side-project area.
func ParseTag(candidate string) Candidate {
	text := strings.TrimSpace(candidate)
	if hasPrefixFold(text, "[side]") || hasPrefixFold(text, "[project]") {
		_, rest, _ := strings.Cut(text, "]")
		return Candidate{Text: strings.TrimSpace(rest), Area: tasks.AreaSideProject}
	}
	return Candidate{Text: text, Area: tasks.AreaWork}
}

// cutKeyword matches kw at the start of text, followed by whitespace or
// the end of input, and returns the trimmed remainder.
func cutKeyword(text, kw string) (string, bool) {
	if !hasPrefixFold(text, kw) {
		return "", false
	}
	rest := text[len(kw):]
	if rest == "" {
		return "", true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func oneOf(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}

// parseID reads the first argument as a task id, ignoring any '#'.
func parseID(args string) (int64, bool) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.ReplaceAll(fields[0], "#", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
