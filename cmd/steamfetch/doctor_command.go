package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"steamfetch/internal/deps"
)

// minimum free space before the doctor flags the download volume.
const minDownloadSpace = 1 << 30

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check binaries, directories, and disk space",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := false

			report := func(name string, passed bool, detail string) {
				label := "OK"
				color := ansiGreen
				if !passed {
					label = "FAIL"
					color = ansiRed
					failed = true
				}
				if colorize {
					label = color + label + ansiReset
				}
				fmt.Fprintf(out, "  %-18s [%s] %s\n", name+":", label, detail)
			}

			fmt.Fprintln(out, "Binaries:")
			for _, status := range deps.CheckSystemDeps(cfg) {
				detail := status.Detail
				if status.Available {
					detail = status.Command
				}
				report(status.Name, status.Available || status.Optional, detail)
			}

			fmt.Fprintln(out, "Directories:")
			for _, result := range []deps.Result{
				deps.CheckDirectoryAccess("Downloads", cfg.Paths.DownloadDir),
				deps.CheckDirectoryAccess("Logs", cfg.Paths.LogDir),
				deps.CheckDirectoryAccess("Cache", cfg.Paths.CacheDir),
			} {
				report(result.Name, result.Passed, result.Detail)
			}

			fmt.Fprintln(out, "Disk:")
			space := deps.CheckDiskSpace("Free space", cfg.Paths.DownloadDir, minDownloadSpace)
			report(space.Name, space.Passed, space.Detail)

			if failed {
				return errors.New("environment checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
