package articles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultList(t *testing.T) {
	l := Default()
	if l.Len() != 30 {
		t.Fatalf("Len = %d, want 30", l.Len())
	}
}

func TestDailyRotatesByYearDay(t *testing.T) {
	l := Default()
	jan1 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	if got, want := l.Daily(jan1), l.entries[1]; got != want {
		t.Fatalf("Daily(Jan 1) = %q, want %q", got.Title, want.Title)
	}
	if l.Daily(jan1) != l.Daily(jan1.Add(10*time.Hour)) {
		t.Fatal("same day returned different articles")
	}
	if l.Daily(jan1.AddDate(0, 0, 30)) != l.Daily(jan1) {
		t.Fatal("rotation period should equal list length")
	}
}

func TestFormat(t *testing.T) {
	got := Format(Article{Title: "Speed Matters", URL: "https://x.test", Description: "Be fast."})
	want := ":book: *Daily Read (10-15 min):*\n<https://x.test|Speed Matters>\n_Be fast._"
	if got != want {
		t.Fatalf("Format = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	_ = os.WriteFile(good, []byte("- title: A\n  url: https://a.test\n  description: d\n"), 0o600)
	l, err := Load(good)
	if err != nil || l.Len() != 1 {
		t.Fatalf("Load(good) = %v, %v", l, err)
	}
	if a := l.Random(); a.Title != "A" {
		t.Fatalf("Random = %+v", a)
	}

	empty := filepath.Join(dir, "empty.yaml")
	_ = os.WriteFile(empty, []byte("[]\n"), 0o600)
	if _, err := Load(empty); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("Load(empty) err = %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("- title: no url\n"), 0o600)
	if _, err := Load(bad); err == nil {
		t.Fatal("Load(bad) expected error")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("Load(missing) expected error")
	}
}
