package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"steamfetch/internal/config"
	"steamfetch/internal/job"
	"steamfetch/internal/logging"
	"steamfetch/internal/steamcmd"
)

var (
	// ErrNotFound marks operations that reference an unknown job ID.
	ErrNotFound = errors.New("job not found")
	// ErrFinished marks cancel attempts against jobs already in history.
	ErrFinished = errors.New("job already finished")
	// ErrBadPosition marks queue operations with an out-of-range position.
	ErrBadPosition = errors.New("queue position out of range")
)

// queuedEntry pairs a pending job with the request that created it. The
// request carries credentials and never leaves the manager.
type queuedEntry struct {
	job *job.Job
	req job.Request
}

// Manager schedules download jobs against a bounded pool of SteamCMD
// processes. Submissions queue in FIFO order and are promoted whenever a
// concurrency slot frees up.
type Manager struct {
	cfg        *config.Config
	tool       steamcmd.Tool
	rootLogger *slog.Logger
	logger     *slog.Logger

	mu      sync.Mutex
	running bool
	runCtx  context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	queue   []queuedEntry
	active  map[string]*supervisor
	history *history
}

// NewManager constructs a stopped manager. Call Start to begin promotion.
func NewManager(cfg *config.Config, tool steamcmd.Tool, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:        cfg,
		tool:       tool,
		rootLogger: logger,
		logger:     logging.NewComponentLogger(logger, "download-manager"),
		active:     make(map[string]*supervisor),
		history:    newHistory(cfg.Downloads.HistoryLimit),
	}
}

// Start begins background scheduling. Jobs submitted earlier are promoted
// immediately; a reconcile ticker re-checks capacity as a safety net.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("download manager already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.runCtx = runCtx
	m.cancel = cancel
	m.running = true
	m.promoteLocked()
	m.wg.Add(1)
	m.mu.Unlock()

	go m.reconcileLoop(runCtx)
	return nil
}

// Stop cancels all active jobs and waits for their supervisors to finish.
// Queued jobs stay queued; a later Start resumes them.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.runCtx = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Submit validates and enqueues a download request. The returned copy
// reflects the job at enqueue time; promotion may follow immediately.
func (m *Manager) Submit(req job.Request) (job.Job, error) {
	if err := req.Validate(); err != nil {
		return job.Job{}, fmt.Errorf("%w: %w", job.ErrInvalidRequest, err)
	}

	j := job.New(req)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, queuedEntry{job: j, req: req})
	m.logger.Info("job submitted",
		logging.String(logging.FieldJobID, j.ID),
		logging.String(logging.FieldAppID, j.AppID),
		logging.Bool("anonymous", j.Anonymous),
		logging.Int("queue_length", len(m.queue)),
	)
	m.promoteLocked()
	return j.Clone(), nil
}

// Cancel stops the identified job. Active jobs are terminated with a grace
// period before a forced kill; queued jobs are removed and recorded in
// history as cancelled.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()

	for i, entry := range m.queue {
		if entry.job.ID != id {
			continue
		}
		copy(m.queue[i:], m.queue[i+1:])
		m.queue[len(m.queue)-1] = queuedEntry{}
		m.queue = m.queue[:len(m.queue)-1]
		entry.job.Status = job.StatusCancelled
		entry.job.TerminalAt = time.Now()
		m.history.Append(entry.job.Clone())
		m.logger.Info("queued job cancelled",
			logging.String(logging.FieldJobID, id),
			logging.String(logging.FieldAppID, entry.job.AppID),
		)
		m.mu.Unlock()
		return nil
	}

	if sup, ok := m.active[id]; ok {
		if sup.cancelRequested {
			m.mu.Unlock()
			return nil
		}
		sup.cancelRequested = true
		handle := sup.handle
		m.logger.Info("cancelling active job",
			logging.String(logging.FieldJobID, id),
			logging.String(logging.FieldAppID, sup.job.AppID),
		)
		m.mu.Unlock()
		if handle != nil {
			sup.terminateWithGrace(handle)
		}
		return nil
	}

	for _, entry := range m.history.List() {
		if entry.ID == id {
			m.mu.Unlock()
			return ErrFinished
		}
	}
	m.mu.Unlock()
	return ErrNotFound
}

// Snapshot returns a detached view of active jobs, the pending queue, and
// the bounded history.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{History: m.history.List()}
	for _, sup := range m.active {
		snap.Active = append(snap.Active, sup.job.Clone())
	}
	sort.Slice(snap.Active, func(i, j int) bool {
		a, b := snap.Active[i], snap.Active[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.Before(b.StartedAt)
		}
		return a.ID < b.ID
	})
	for i, entry := range m.queue {
		snap.Queued = append(snap.Queued, QueuedJob{Position: i + 1, Job: entry.job.Clone()})
	}
	return snap
}

// RemoveQueued drops the pending job at the given one-based position without
// recording it in history.
func (m *Manager) RemoveQueued(position int) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := position - 1
	if idx < 0 || idx >= len(m.queue) {
		return job.Job{}, fmt.Errorf("%w: %d", ErrBadPosition, position)
	}
	entry := m.queue[idx]
	copy(m.queue[idx:], m.queue[idx+1:])
	m.queue[len(m.queue)-1] = queuedEntry{}
	m.queue = m.queue[:len(m.queue)-1]
	m.logger.Info("queued job removed",
		logging.String(logging.FieldJobID, entry.job.ID),
		logging.String(logging.FieldAppID, entry.job.AppID),
	)
	return entry.job.Clone(), nil
}

// MoveQueued relocates the pending job at one-based position from to
// position to, shifting the jobs in between.
func (m *Manager) MoveQueued(from, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, dst := from-1, to-1
	if src < 0 || src >= len(m.queue) {
		return fmt.Errorf("%w: %d", ErrBadPosition, from)
	}
	if dst < 0 || dst >= len(m.queue) {
		return fmt.Errorf("%w: %d", ErrBadPosition, to)
	}
	if src == dst {
		return nil
	}

	entry := m.queue[src]
	if src < dst {
		copy(m.queue[src:], m.queue[src+1:dst+1])
	} else {
		copy(m.queue[dst+1:], m.queue[dst:src])
	}
	m.queue[dst] = entry
	return nil
}

// promoteLocked fills free concurrency slots from the queue head. Callers
// hold m.mu.
func (m *Manager) promoteLocked() {
	if !m.running {
		return
	}
	limit := m.cfg.Downloads.MaxConcurrent
	for len(m.active) < limit && len(m.queue) > 0 {
		entry := m.queue[0]
		copy(m.queue, m.queue[1:])
		m.queue[len(m.queue)-1] = queuedEntry{}
		m.queue = m.queue[:len(m.queue)-1]

		entry.job.Status = job.StatusStarting
		entry.job.StartedAt = time.Now()

		sup := newSupervisor(m, entry.job, entry.req)
		m.active[entry.job.ID] = sup
		m.wg.Add(1)
		go sup.run(m.runCtx)

		m.logger.Info("job started",
			logging.String(logging.FieldJobID, entry.job.ID),
			logging.String(logging.FieldAppID, entry.job.AppID),
			logging.Int("active", len(m.active)),
		)
	}
}

// finishLocked records a terminal outcome, frees the slot, and promotes the
// next queued job in the same pass. Callers hold m.mu.
func (m *Manager) finishLocked(s *supervisor, status job.Status, detail string, exitCode int) {
	j := s.job
	if _, ok := m.active[j.ID]; !ok {
		return
	}
	if !j.Status.IsTerminal() {
		j.Status = status
		j.ErrorDetail = detail
		j.TerminalAt = time.Now()
		if status == job.StatusCompleted {
			j.Progress = 100
			j.ErrorDetail = ""
		}
		m.history.Append(j.Clone())
	}
	delete(m.active, j.ID)
	m.logger.Info("job finished",
		logging.String(logging.FieldJobID, j.ID),
		logging.String(logging.FieldAppID, j.AppID),
		logging.String(logging.FieldStatus, j.Status.String()),
		logging.String(logging.FieldReason, j.ErrorDetail),
		logging.Int(logging.FieldExitCode, exitCode),
	)
	m.promoteLocked()
}

func (m *Manager) reconcileLoop(ctx context.Context) {
	defer m.wg.Done()

	interval := time.Duration(m.cfg.Downloads.ReconcileInterval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			if over := len(m.active) - m.cfg.Downloads.MaxConcurrent; over > 0 {
				m.logger.Error("active downloads exceed the concurrency limit",
					logging.Int("active", len(m.active)),
					logging.Int("limit", m.cfg.Downloads.MaxConcurrent),
				)
			}
			m.promoteLocked()
			m.mu.Unlock()
		}
	}
}
