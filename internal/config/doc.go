// Package config loads, normalizes, and validates steamfetch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the daemon and CLI need: download and log directories, concurrency and
// history limits, supervisor timeouts, the SteamCMD binary, and the Steam
// storefront endpoint.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
