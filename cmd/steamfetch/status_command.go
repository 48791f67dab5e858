package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon state, active downloads, and the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				state := "stopped"
				if status.Running {
					state = "running"
				}
				fmt.Fprintf(out, "Daemon: %s (pid %d, slots %d)\n", state, status.PID, status.MaxConcurrent)
				if !status.StartedAt.IsZero() {
					fmt.Fprintf(out, "Started: %s\n", formatWhen(status.StartedAt))
				}
				fmt.Fprintf(out, "Socket: %s\n", status.SocketPath)

				fmt.Fprintln(out)
				fmt.Fprintln(out, "Active downloads:")
				if len(status.Active) == 0 {
					fmt.Fprintln(out, "  (none)")
				} else {
					rows := make([][]string, 0, len(status.Active))
					for _, view := range status.Active {
						rows = append(rows, jobRow(view, colorize))
					}
					fmt.Fprintln(out, renderTable(jobHeaders, rows, jobAligns))
				}

				fmt.Fprintln(out)
				fmt.Fprintln(out, "Queued:")
				if len(status.Queued) == 0 {
					fmt.Fprintln(out, "  (none)")
				} else {
					rows := make([][]string, 0, len(status.Queued))
					for _, entry := range status.Queued {
						row := append([]string{fmt.Sprintf("%d", entry.Position)}, jobRow(entry.Job, colorize)...)
						rows = append(rows, row)
					}
					headers := append([]string{"#"}, jobHeaders...)
					aligns := append([]columnAlignment{alignRight}, jobAligns...)
					fmt.Fprintln(out, renderTable(headers, rows, aligns))
				}
				return nil
			})
		},
	}
}
