// Package app wires configuration into the running components shared by
// the API server and the operator CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"focus-prompter/internal/articles"
	"focus-prompter/internal/command"
	"focus-prompter/internal/config"
	"focus-prompter/internal/db"
	"focus-prompter/internal/notify"
	"focus-prompter/internal/planning"
	"focus-prompter/internal/tasks"
)

type App struct {
	Config      *config.Config
	Log         *slog.Logger
	DB          *db.DB
	Store       *tasks.Store
	Engine      *planning.Engine
	Interpreter *command.Interpreter
}

// Open connects to the database, applies the schema and builds the
// store, planning engine and interpreter.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	database, err := db.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	list, err := articles.Load(cfg.ArticlesFile)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	store := tasks.NewStore(database)
	engine := planning.New(store, list, Notifier(cfg, logger), planning.Config{
		StuckThreshold: cfg.StuckThreshold,
		FocusItems:     cfg.FocusItems,
		Location:       cfg.Location(),
	}, logger)
	interp := command.New(store, engine, command.Config{
		RefocusLimit: cfg.RefocusLimit,
		MorningTime:  cfg.MorningTime,
	}, logger)

	logger.Info("store ready", "driver", database.Driver, "articles", list.Len())
	return &App{
		Config:      cfg,
		Log:         logger,
		DB:          database,
		Store:       store,
		Engine:      engine,
		Interpreter: interp,
	}, nil
}

// Notifier picks webhook delivery when a URL is configured, logging otherwise.
func Notifier(cfg *config.Config, logger *slog.Logger) planning.Notifier {
	if cfg.WebhookURL != "" {
		return notify.NewWebhook(cfg.WebhookURL)
	}
	return notify.LogNotifier{Logger: logger}
}

// Scheduler returns the daily trigger scheduler for the configured morning time.
func (a *App) Scheduler() *planning.Scheduler {
	hour, minute := a.Config.MorningClock()
	return planning.NewScheduler(a.Engine, hour, minute, a.Config.Location(), a.Log)
}

func (a *App) Close() error {
	return a.DB.Close()
}
