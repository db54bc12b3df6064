package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addMigrate(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the tasks and daily_plans tables if missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Open migrates as part of wiring.
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", a.DB.Driver)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
