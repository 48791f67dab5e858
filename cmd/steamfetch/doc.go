// Command steamfetch is the control CLI for the steamfetch daemon. It
// submits downloads, inspects the queue and history, and runs environment
// checks, talking to steamfetchd over its Unix socket.
package main
