package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"steamfetch/internal/config"
	"steamfetch/internal/download"
	"steamfetch/internal/job"
	"steamfetch/internal/logging"
)

// Daemon coordinates the download manager and enforces single-instance
// execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	manager *download.Manager

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
	cancel    context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running       bool
	StartedAt     time.Time
	LockFilePath  string
	SocketPath    string
	MaxConcurrent int
	ActiveJobs    int
	QueuedJobs    int
	HistoryJobs   int
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, manager *download.Manager, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || manager == nil {
		return nil, errors.New("daemon requires config and download manager")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "steamfetchd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		manager:  manager,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the download manager.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another steamfetch daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.manager.Start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start download manager: %w", err)
	}

	d.cancel = cancel
	d.startedAt = time.Now()
	d.running.Store(true)
	d.logger.Info("steamfetch daemon started", logging.String("lock", d.lockPath))
	return nil
}

// Stop cancels active downloads and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.manager.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("steamfetch daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Running reports whether the daemon has been started.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Submit enqueues a download request.
func (d *Daemon) Submit(req job.Request) (job.Job, error) {
	return d.manager.Submit(req)
}

// Cancel stops the identified job.
func (d *Daemon) Cancel(id string) error {
	return d.manager.Cancel(id)
}

// Snapshot returns the current scheduler view.
func (d *Daemon) Snapshot() download.Snapshot {
	return d.manager.Snapshot()
}

// RemoveQueued drops the pending job at the given one-based position.
func (d *Daemon) RemoveQueued(position int) (job.Job, error) {
	return d.manager.RemoveQueued(position)
}

// MoveQueued reorders the pending queue.
func (d *Daemon) MoveQueued(from, to int) error {
	return d.manager.MoveQueued(from, to)
}

// Status summarizes daemon runtime state.
func (d *Daemon) Status() Status {
	snap := d.manager.Snapshot()
	return Status{
		Running:       d.running.Load(),
		StartedAt:     d.startedAt,
		LockFilePath:  d.lockPath,
		SocketPath:    d.cfg.Paths.SocketPath,
		MaxConcurrent: d.cfg.Downloads.MaxConcurrent,
		ActiveJobs:    len(snap.Active),
		QueuedJobs:    len(snap.Queued),
		HistoryJobs:   len(snap.History),
	}
}
