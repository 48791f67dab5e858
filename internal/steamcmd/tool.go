package steamcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// ErrSpawn marks failures to launch the external tool.
var ErrSpawn = errors.New("spawn steamcmd")

// Tool launches SteamCMD processes.
type Tool interface {
	Spawn(ctx context.Context, argv []string) (Handle, error)
}

// Handle exposes one running SteamCMD process. Lines delivers the interleaved
// stdout/stderr output line by line and is closed when both streams end.
// Wait must be called after Lines is drained and returns the exit code.
type Handle interface {
	Lines() <-chan string
	Wait() int
	Terminate() error
	Kill() error
}

// CommandTool spawns the configured SteamCMD binary via os/exec.
type CommandTool struct {
	binary string
}

// NewCommandTool constructs a Tool for the given binary path or name.
func NewCommandTool(binary string) (*CommandTool, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("steamcmd binary required")
	}
	return &CommandTool{binary: binary}, nil
}

// Spawn starts the process and begins pumping its output.
func (t *CommandTool) Spawn(ctx context.Context, argv []string) (Handle, error) {
	cmd := exec.CommandContext(ctx, t.binary, argv...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", ErrSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stderr pipe: %w", ErrSpawn, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSpawn, err)
	}

	h := &commandHandle{cmd: cmd, lines: make(chan string, 64)}
	h.wg.Add(2)
	go h.scan(stdout)
	go h.scan(stderr)
	go func() {
		h.wg.Wait()
		close(h.lines)
	}()
	return h, nil
}

type commandHandle struct {
	cmd   *exec.Cmd
	lines chan string
	wg    sync.WaitGroup
}

func (h *commandHandle) scan(r io.Reader) {
	defer h.wg.Done()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		h.lines <- scanner.Text()
	}
	// Scanner errors (oversized or torn lines) end this stream; the other
	// stream and Wait still determine the outcome.
}

func (h *commandHandle) Lines() <-chan string {
	return h.lines
}

func (h *commandHandle) Wait() int {
	err := h.cmd.Wait()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (h *commandHandle) Terminate() error {
	if h.cmd.Process == nil {
		return errors.New("process not started")
	}
	return h.cmd.Process.Signal(syscall.SIGTERM)
}

func (h *commandHandle) Kill() error {
	if h.cmd.Process == nil {
		return errors.New("process not started")
	}
	return h.cmd.Process.Kill()
}
