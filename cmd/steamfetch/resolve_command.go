package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/appinfo"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <app-id-or-url>",
		Short: "Look up storefront details for an app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc := appinfo.NewService(cfg, nil)
			details, err := svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "App ID:      %s\n", details.AppID)
			fmt.Fprintf(out, "Name:        %s\n", details.Name)
			if details.Type != "" {
				fmt.Fprintf(out, "Type:        %s\n", details.Type)
			}
			fmt.Fprintf(out, "Free:        %t\n", details.IsFree)
			if details.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", details.Description)
			}
			return nil
		},
	}
}
