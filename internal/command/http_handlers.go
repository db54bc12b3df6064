package command

import (
	"encoding/json"
	"net/http"

	"focus-prompter/internal/tasks"
)

// CommandHandler runs one chat message through the interpreter, the same
// path the chat integration uses.
func CommandHandler(in *Interpreter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		reply, err := in.Handle(r.Context(), body.Text)
		if err != nil {
			tasks.WriteError(w, r, err)
			return
		}
		tasks.WriteJSON(w, http.StatusOK, map[string]any{"reply": reply})
	}
}
