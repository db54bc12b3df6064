package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"focus-prompter/internal/app"
	"focus-prompter/internal/config"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "focusctl",
		Short:         "Operate the focus prompter: talk to it, inspect tasks, run the morning trigger.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", os.Getenv("FOCUS_CONFIG"), "path to a focus.yaml config file")

	addSay(cmd, opts)
	addList(cmd, opts)
	addTrigger(cmd, opts)
	addMigrate(cmd, opts)
	addToken(cmd, opts)
	return cmd
}

// open loads config and wires the app. Logs go to stderr so command output
// stays clean.
func (o *rootOptions) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, cfg.NewLogger(os.Stderr))
}
