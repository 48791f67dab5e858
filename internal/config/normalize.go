package config

import (
	"path/filepath"
	"strings"
)

// normalize expands and cleans path fields and fills in derived defaults.
func (c *Config) normalize() error {
	var err error

	c.Paths.DownloadDir, err = expandPath(strings.TrimSpace(c.Paths.DownloadDir))
	if err != nil {
		return err
	}
	c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir))
	if err != nil {
		return err
	}
	c.Paths.CacheDir, err = expandPath(strings.TrimSpace(c.Paths.CacheDir))
	if err != nil {
		return err
	}

	c.Paths.SocketPath = strings.TrimSpace(c.Paths.SocketPath)
	if c.Paths.SocketPath == "" {
		c.Paths.SocketPath = filepath.Join(c.Paths.LogDir, "steamfetchd.sock")
	} else {
		c.Paths.SocketPath, err = expandPath(c.Paths.SocketPath)
		if err != nil {
			return err
		}
	}

	c.SteamCMD.Binary = strings.TrimSpace(c.SteamCMD.Binary)
	c.Steam.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.Steam.APIBaseURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	return nil
}
