// Package steamcmd wraps interactions with the SteamCMD command line tool.
//
// The Tool and Handle interfaces abstract process execution so the supervisor
// can be tested without spawning real processes. BuildArgs produces the
// deterministic argument vector for a download request, Parse turns raw
// output lines into structured progress events, and Classify maps accumulated
// output plus the exit code to a short failure reason.
//
// SteamCMD output is noisy and inconsistent between versions; the parser and
// classifier are deliberately tolerant and treat unrecognized lines as no-ops.
package steamcmd
