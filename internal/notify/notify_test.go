package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookNotifierPostsText(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewWebhook(srv.URL).Notify(context.Background(), "good morning"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got["text"] != "good morning" {
		t.Fatalf("payload = %v", got)
	}
}

func TestWebhookNotifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no_service", http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL).Notify(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "404") || !strings.Contains(err.Error(), "no_service") {
		t.Fatalf("err = %v", err)
	}
}

func TestLogNotifier(t *testing.T) {
	var sb strings.Builder
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(io.Writer(&sb), nil))}
	if err := n.Notify(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sb.String(), "hello") {
		t.Fatalf("log = %q", sb.String())
	}
}
