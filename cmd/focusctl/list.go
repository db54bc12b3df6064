package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"focus-prompter/internal/tasks"
)

func addList(topLevel *cobra.Command, opts *rootOptions) {
	var area string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show pending tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			var list []tasks.Task
			if area != "" {
				list, err = a.Store.ListByArea(cmd.Context(), tasks.ParseArea(area))
			} else {
				list, err = a.Store.ListPending(cmd.Context())
			}
			if err != nil {
				return err
			}
			renderTasks(cmd.OutOrStdout(), list, a.Config.StuckThreshold)
			return nil
		},
	}
	cmd.Flags().StringVar(&area, "area", "", "only show one area (work, side_project)")
	topLevel.AddCommand(cmd)
}

// renderTasks prints a task table. Tasks at or past the stuck threshold are
// highlighted.
func renderTasks(w io.Writer, list []tasks.Task, stuckThreshold int) {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "No pending tasks.")
		return
	}

	bold := color.New(color.Bold)
	stuck := color.New(color.FgRed)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Day"), bold.Sprint("Area"), bold.Sprint("Task"))
	for _, t := range list {
		day := strconv.Itoa(t.CarryoverCount + 1)
		if t.CarryoverCount >= stuckThreshold {
			day = stuck.Sprint(day)
		}
		tbl.AddRow(t.ID, day, string(t.Area), t.Text)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
