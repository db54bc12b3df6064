package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func addSay(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "say <message...>",
		Short: "Send one message to the assistant and print its reply",
		Example: `
focusctl say add Buy milk
focusctl say "add
- Call Bob
- Review PR"
focusctl say done 3
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a message")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			reply, err := a.Interpreter.Handle(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if reply != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), reply)
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
