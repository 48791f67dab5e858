package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/appinfo"
	"steamfetch/internal/ipc"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		name      string
		username  string
		password  string
		guardCode string
		validate  bool
	)

	cmd := &cobra.Command{
		Use:   "submit <app-id-or-url>",
		Short: "Queue a download with the daemon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := appinfo.ParseTarget(args[0])
			if err != nil {
				return err
			}

			// Resolve a display name from the storefront when none was given.
			if name == "" {
				if cfg, cfgErr := ctx.ensureConfig(); cfgErr == nil {
					svc := appinfo.NewService(cfg, nil)
					if details, lookupErr := svc.Lookup(cmd.Context(), appID); lookupErr == nil {
						name = details.Name
					}
				}
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Submit(ipc.SubmitRequest{
					AppID:     appID,
					Name:      name,
					Username:  username,
					Password:  password,
					GuardCode: guardCode,
					Validate:  validate,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %s (%s) as job %s\n",
					resp.Job.Name, resp.Job.AppID, shortID(resp.Job.ID))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the download")
	cmd.Flags().StringVar(&username, "username", "", "Steam account username")
	cmd.Flags().StringVar(&password, "password", "", "Steam account password")
	cmd.Flags().StringVar(&guardCode, "guard-code", "", "Steam Guard code")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate files after download")

	return cmd
}
