package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/ipc"
)

func newCancelCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <job-id>",
		Short: "Cancel an active or queued download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				id, err := resolveJobID(client, args[0])
				if err != nil {
					return err
				}
				resp, err := client.Cancel(id)
				if err != nil {
					return err
				}
				if !resp.Cancelled {
					return errors.New(resp.Message)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cancelled job %s\n", shortID(id))
				return nil
			})
		},
	}
}

// resolveJobID accepts a full job ID or an unambiguous prefix.
func resolveJobID(client *ipc.Client, input string) (string, error) {
	status, err := client.Status()
	if err != nil {
		return "", err
	}

	var matches []string
	seen := map[string]struct{}{}
	consider := func(view ipc.JobView) {
		if view.ID == input {
			matches = append(matches, view.ID)
			seen[view.ID] = struct{}{}
			return
		}
		if len(input) >= 4 && len(view.ID) > len(input) && view.ID[:len(input)] == input {
			if _, dup := seen[view.ID]; !dup {
				matches = append(matches, view.ID)
				seen[view.ID] = struct{}{}
			}
		}
	}
	for _, view := range status.Active {
		consider(view)
	}
	for _, entry := range status.Queued {
		consider(entry.Job)
	}
	for _, view := range status.History {
		consider(view)
	}

	switch len(matches) {
	case 0:
		// Hand the raw input to the daemon so its error names the job.
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("job id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
