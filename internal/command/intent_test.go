package command

import (
	"reflect"
	"testing"

	"focus-prompter/internal/tasks"
)

func TestParse(t *testing.T) {
	work := func(text string) Candidate { return Candidate{Text: text, Area: tasks.AreaWork} }
	side := func(text string) Candidate { return Candidate{Text: text, Area: tasks.AreaSideProject} }

	cases := []struct {
		in   string
		want Intent
	}{
		{"add Buy milk", AddIntent{Candidates: []Candidate{work("Buy milk")}}},
		{"ADD Buy Milk", AddIntent{Candidates: []Candidate{work("Buy Milk")}}},
		{"add [side] Refactor module", AddIntent{Candidates: []Candidate{side("Refactor module")}}},
		{"add [PROJECT] Ship blog", AddIntent{Candidates: []Candidate{side("Ship blog")}}},
		{"add\n- Buy milk\n- Call Bob\n* Review PR", AddIntent{Candidates: []Candidate{
			work("Buy milk"), work("Call Bob"), work("Review PR"),
		}}},
		{"add\n1. First\n2) [side] Second", AddIntent{Candidates: []Candidate{work("First"), side("Second")}}},
		{"add", UsageIntent{Command: usageAdd}},
		{"add   ", UsageIntent{Command: usageAdd}},
		{"add [side]", UsageIntent{Command: usageAdd}},
		{"address the envelope", UnknownIntent{Text: "address the envelope"}},

		{"list", ListIntent{}},
		{"  LS  ", ListIntent{}},
		{"tasks", ListIntent{}},
		{"show", ListIntent{}},

		{"done 3", CompleteIntent{ID: 3}},
		{"Done #12", CompleteIntent{ID: 12}},
		{"complete 7 now", CompleteIntent{ID: 7}},
		{"done", UsageIntent{Command: usageDone}},
		{"done abc", UsageIntent{Command: usageDone}},

		{"delete 4", DeleteIntent{ID: 4}},
		{"remove #9", DeleteIntent{ID: 9}},
		{"delete x", UsageIntent{Command: usageDelete}},

		{"focus", FocusIntent{}},
		{"Morning", FocusIntent{}},
		{"plan", FocusIntent{}},
		{"start", FocusIntent{}},

		{"refocus", RefocusIntent{}},
		{"stuck", RefocusIntent{}},
		{"Help me focus", RefocusIntent{}},

		{"win: Ship the release", WinIntent{Criteria: "Ship the release"}},
		{"TODAY:  close 3 bugs ", WinIntent{Criteria: "close 3 bugs"}},
		{"win:", UsageIntent{Command: usageWin}},

		{"help", HelpIntent{}},
		{"?", HelpIntent{}},
		{"commands", HelpIntent{}},
		{"read", ReadIntent{}},
		{"article", ReadIntent{}},

		{"buy some eggs", UnknownIntent{Text: "buy some eggs"}},
		{"/giphy cats", NoopIntent{}},
		{"ok", NoopIntent{}},
		{"hey", NoopIntent{}},
		{"", NoopIntent{}},
	}
	for _, tc := range cases {
		if got := Parse(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestParseTag(t *testing.T) {
	if got := ParseTag("[Side]   Write post"); got.Area != tasks.AreaSideProject || got.Text != "Write post" {
		t.Fatalf("ParseTag = %+v", got)
	}
	if got := ParseTag("[later] Write post"); got.Area != tasks.AreaWork || got.Text != "[later] Write post" {
		t.Fatalf("unknown tag = %+v", got)
	}
}
