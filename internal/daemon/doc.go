// Package daemon wires the download manager into a long-running background
// service. It enforces single-instance execution with a file lock and exposes
// the operations the IPC layer forwards from the CLI.
package daemon
