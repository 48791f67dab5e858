package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.DownloadDir == "" {
		problems = append(problems, "paths.download_dir must be set")
	}
	if c.Paths.LogDir == "" {
		problems = append(problems, "paths.log_dir must be set")
	}
	if c.Paths.CacheDir == "" {
		problems = append(problems, "paths.cache_dir must be set")
	}
	if c.Paths.SocketPath == "" {
		problems = append(problems, "paths.socket_path must be set")
	}

	if c.Downloads.MaxConcurrent < 1 {
		problems = append(problems, "downloads.max_concurrent must be at least 1")
	}
	if c.Downloads.HistoryLimit < 1 {
		problems = append(problems, "downloads.history_limit must be at least 1")
	}
	if c.Downloads.StartupTimeout < 1 {
		problems = append(problems, "downloads.startup_timeout must be at least 1 second")
	}
	if c.Downloads.CancelGrace < 1 {
		problems = append(problems, "downloads.cancel_grace must be at least 1 second")
	}
	if c.Downloads.ReconcileInterval < 1 {
		problems = append(problems, "downloads.reconcile_interval must be at least 1 second")
	}

	if c.SteamCMD.Binary == "" {
		problems = append(problems, "steamcmd.binary must be set")
	}

	if c.Steam.APIBaseURL == "" {
		problems = append(problems, "steam.api_base_url must be set")
	}
	if c.Steam.RequestTimeout < 1 {
		problems = append(problems, "steam.request_timeout must be at least 1 second")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q must be debug, info, warn, or error", c.Logging.Level))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
