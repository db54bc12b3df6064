package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"focus-prompter/internal/auth"
	"focus-prompter/internal/config"
)

func addToken(topLevel *cobra.Command, opts *rootOptions) {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the companion HTTP client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}
			if cfg.APISecret == "" {
				return errors.New("api_secret is not configured")
			}

			tok, err := auth.GenerateToken([]byte(cfg.APISecret), ttl)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime")
	topLevel.AddCommand(cmd)
}
