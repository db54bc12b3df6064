package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addTrigger(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Run the morning planning trigger now: age tasks and deliver the message",
		Long: `Runs the same job the server schedules at morning_time. Every pending task
is aged by one day, so running it twice in a day ages tasks twice.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.Engine.RunDailyTrigger(cmd.Context())
			if msg != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			return err
		},
	}
	topLevel.AddCommand(cmd)
}
