package tasks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// -------------------------------
// HANDLERS (companion client API)
// -------------------------------

func GetTasksHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []Task
			err  error
		)
		if area := strings.TrimSpace(r.URL.Query().Get("area")); area != "" {
			list, err = store.ListByArea(r.Context(), ParseArea(area))
		} else {
			list, err = store.ListPending(r.Context())
		}
		if err != nil {
			WriteError(w, r, err)
			return
		}

		WriteJSON(w, http.StatusOK, map[string]any{"tasks": list})
	}
}

func CreateTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
			Area string `json:"area"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		id, err := store.CreateTask(r.Context(), body.Text, ParseArea(body.Area))
		if err != nil {
			WriteError(w, r, err)
			return
		}

		t, err := store.GetTask(r.Context(), id)
		if err != nil || t == nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, t)
	}
}

func CompleteTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		done, err := store.CompleteTask(r.Context(), id)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		if !done {
			WriteJSON(w, http.StatusNotFound, map[string]any{"error": "Task not found"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func DeleteTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		deleted, err := store.DeleteTask(r.Context(), id)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		if !deleted {
			WriteJSON(w, http.StatusNotFound, map[string]any{"error": "Task not found"})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// StatsHandler reports pending count and completions for the current local day.
func StatsHandler(store *Store, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := store.now().In(loc)
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

		st, err := store.Stats(r.Context(), dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, st)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps store errors to HTTP statuses.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSON(w, http.StatusBadRequest, map[string]any{"error": verr.Error()})
	case errors.Is(err, ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), "store unavailable", "path", r.URL.Path, "err", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
