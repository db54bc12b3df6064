package planning

import (
	"encoding/json"
	"net/http"

	"focus-prompter/internal/tasks"
)

func GetPlanHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, err := e.TodayPlan(r.Context())
		if err != nil {
			tasks.WriteError(w, r, err)
			return
		}
		if plan == nil {
			tasks.WriteJSON(w, http.StatusNotFound, map[string]any{"error": "no plan for today"})
			return
		}
		tasks.WriteJSON(w, http.StatusOK, plan)
	}
}

func SetPlanHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			WinCriteria string `json:"win_criteria"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		plan, err := e.SetWinCriteria(r.Context(), body.WinCriteria)
		if err != nil {
			tasks.WriteError(w, r, err)
			return
		}
		tasks.WriteJSON(w, http.StatusOK, plan)
	}
}

// ArticleHandler returns today's reading recommendation.
func ArticleHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks.WriteJSON(w, http.StatusOK, e.Article())
	}
}
