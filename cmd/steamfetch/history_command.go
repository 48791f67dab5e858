package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/ipc"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show finished downloads, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(status.History) == 0 {
					fmt.Fprintln(out, "History is empty")
					return nil
				}
				colorize := shouldColorize(out)
				headers := []string{"ID", "App", "Name", "Status", "Detail", "Finished"}
				rows := make([][]string, 0, len(status.History))
				for _, view := range status.History {
					detail := view.ErrorDetail
					if detail == "" {
						detail = "-"
					}
					rows = append(rows, []string{
						shortID(view.ID),
						view.AppID,
						view.Name,
						colorizeStatus(view.Status, colorize),
						detail,
						formatWhen(view.TerminalAt),
					})
				}
				aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}
}
