package config

// Default returns a configuration populated with default values.
func Default() Config {
	return Config{
		Paths: Paths{
			DownloadDir: "~/.local/share/steamfetch/downloads",
			LogDir:      "~/.local/share/steamfetch/logs",
			CacheDir:    "~/.cache/steamfetch/appinfo",
		},
		Downloads: Downloads{
			MaxConcurrent:     1,
			HistoryLimit:      50,
			StartupTimeout:    600,
			CancelGrace:       5,
			ReconcileInterval: 5,
		},
		SteamCMD: SteamCMD{
			Binary: "steamcmd",
		},
		Steam: Steam{
			APIBaseURL:     "https://store.steampowered.com/api",
			RequestTimeout: 10,
			CacheEnabled:   true,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
