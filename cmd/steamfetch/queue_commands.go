package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"steamfetch/internal/ipc"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and reorder pending downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueueList(cmd, ctx)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pending downloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueueList(cmd, ctx)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <position>",
		Short: "Remove the pending download at the given position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.QueueRemove(position)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s) from the queue\n",
					resp.Job.Name, resp.Job.AppID)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a pending download to a new position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.QueueMove(from, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved queue position %d to %d\n", from, to)
				return nil
			})
		},
	})

	return cmd
}

func runQueueList(cmd *cobra.Command, ctx *commandContext) error {
	return ctx.withClient(func(client *ipc.Client) error {
		status, err := client.Status()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(status.Queued) == 0 {
			fmt.Fprintln(out, "Queue is empty")
			return nil
		}
		colorize := shouldColorize(out)
		rows := make([][]string, 0, len(status.Queued))
		for _, entry := range status.Queued {
			rows = append(rows, append([]string{strconv.Itoa(entry.Position)}, jobRow(entry.Job, colorize)...))
		}
		headers := append([]string{"#"}, jobHeaders...)
		aligns := append([]columnAlignment{alignRight}, jobAligns...)
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
		return nil
	})
}

func parsePosition(value string) (int, error) {
	position, err := strconv.Atoi(value)
	if err != nil || position < 1 {
		return 0, fmt.Errorf("invalid queue position %q", value)
	}
	return position, nil
}
