package main

import (
	"net/http"
	"time"

	"github.com/rs/cors"

	"focus-prompter/internal/app"
	"focus-prompter/internal/auth"
	"focus-prompter/internal/command"
	"focus-prompter/internal/planning"
	"focus-prompter/internal/tasks"
)

func newRouter(a *app.App) http.Handler {
	mux := http.NewServeMux()
	authMW := auth.New([]byte(a.Config.APISecret))
	loc := a.Config.Location()

	// Health endpoint
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		tasks.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().In(loc).Format(time.RFC3339),
		})
	})

	// ----- TASKS API -----
	mux.HandleFunc("GET /api/tasks", authMW.Wrap(tasks.GetTasksHandler(a.Store)))
	mux.HandleFunc("POST /api/tasks", authMW.Wrap(tasks.CreateTaskHandler(a.Store)))
	mux.HandleFunc("POST /api/tasks/{id}/complete", authMW.Wrap(tasks.CompleteTaskHandler(a.Store)))
	mux.HandleFunc("DELETE /api/tasks/{id}", authMW.Wrap(tasks.DeleteTaskHandler(a.Store)))
	mux.HandleFunc("GET /api/stats", authMW.Wrap(tasks.StatsHandler(a.Store, loc)))

	// ----- PLANNING API -----
	mux.HandleFunc("GET /api/plan", authMW.Wrap(planning.GetPlanHandler(a.Engine)))
	mux.HandleFunc("POST /api/plan", authMW.Wrap(planning.SetPlanHandler(a.Engine)))
	mux.HandleFunc("GET /api/article", authMW.Wrap(planning.ArticleHandler(a.Engine)))

	// ----- CONVERSATION -----
	mux.HandleFunc("POST /api/command", authMW.Wrap(command.CommandHandler(a.Interpreter)))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   a.Config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})

	return withRequestID(a.Log, c.Handler(mux))
}
