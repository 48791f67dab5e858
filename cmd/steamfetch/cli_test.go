package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"steamfetch/internal/daemon"
	"steamfetch/internal/download"
	"steamfetch/internal/ipc"
	"steamfetch/internal/logging"
	"steamfetch/internal/steamcmd"
	"steamfetch/internal/testsupport"
)

type idleTool struct{}

func (idleTool) Spawn(context.Context, []string) (steamcmd.Handle, error) {
	return nil, errors.New("spawning disabled in cli tests")
}

// startTestServer brings up a daemon and IPC server on a temp socket and
// returns the socket path.
func startTestServer(t *testing.T) string {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	manager := download.NewManager(cfg, idleTool{}, logging.NewNop())
	d, err := daemon.New(cfg, manager, logging.NewNop())
	if err != nil {
		t.Fatalf("new daemon: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	server, err := ipc.NewServer(t.Context(), cfg.Paths.SocketPath, d, logging.NewNop())
	if err != nil {
		t.Fatalf("new ipc server: %v", err)
	}
	server.Serve()
	t.Cleanup(server.Close)

	return cfg.Paths.SocketPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSubmitStatusAndCancelFlow(t *testing.T) {
	socket := startTestServer(t)
	missingConfig := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t,
		"--socket", socket, "--config", missingConfig,
		"submit", "440", "--name", "Team Fortress 2")
	if err != nil {
		t.Fatalf("submit: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Queued Team Fortress 2 (440)") {
		t.Fatalf("submit output = %q", out)
	}

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "status")
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Daemon: stopped") || !strings.Contains(out, "Team Fortress 2") {
		t.Fatalf("status output = %q", out)
	}

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "440") {
		t.Fatalf("queue output = %q", out)
	}

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "queue", "remove", "1")
	if err != nil {
		t.Fatalf("queue remove: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Removed Team Fortress 2 (440)") {
		t.Fatalf("remove output = %q", out)
	}

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Queue is empty") {
		t.Fatalf("queue output after remove = %q", out)
	}
}

func TestCancelByPrefix(t *testing.T) {
	socket := startTestServer(t)
	missingConfig := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t,
		"--socket", socket, "--config", missingConfig,
		"submit", "570", "--name", "Dota 2")
	if err != nil {
		t.Fatalf("submit: %v\n%s", err, out)
	}

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	status, err := client.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if len(status.Queued) != 1 {
		t.Fatalf("queued = %+v", status.Queued)
	}
	prefix := status.Queued[0].Job.ID[:8]

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "cancel", prefix)
	if err != nil {
		t.Fatalf("cancel: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Cancelled job "+prefix) {
		t.Fatalf("cancel output = %q", out)
	}

	out, err = runCLI(t, "--socket", socket, "--config", missingConfig, "history")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Fatalf("history output = %q", out)
	}
}

func TestCommandsFailWithoutDaemon(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "absent.sock")
	missingConfig := filepath.Join(t.TempDir(), "config.toml")

	_, err := runCLI(t, "--socket", socket, "--config", missingConfig, "status")
	if err == nil {
		t.Fatal("status without daemon should fail")
	}
	if !strings.Contains(err.Error(), "connect to daemon") {
		t.Fatalf("error should explain the connection failure: %v", err)
	}
}
