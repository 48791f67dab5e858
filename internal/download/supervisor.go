package download

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"steamfetch/internal/job"
	"steamfetch/internal/logging"
	"steamfetch/internal/steamcmd"
)

// tailLimit bounds the output retained for failure classification.
const tailLimit = 40

// supervisor drives one SteamCMD process from spawn to terminal state. All
// fields besides the logger are guarded by the manager mutex; the line loop
// itself never holds the lock while reading.
type supervisor struct {
	mgr    *Manager
	job    *job.Job
	req    job.Request
	logger *slog.Logger

	handle steamcmd.Handle

	cancelRequested bool
	startupTimedOut bool
	successSeen     bool
	markerReason    string
	allowRegress    bool

	tail []string
}

func newSupervisor(m *Manager, j *job.Job, req job.Request) *supervisor {
	logger := logging.NewComponentLogger(m.rootLogger, "download-supervisor").With(
		logging.String(logging.FieldJobID, j.ID),
		logging.String(logging.FieldAppID, j.AppID),
	)
	return &supervisor{mgr: m, job: j, req: req, logger: logger}
}

func (s *supervisor) run(ctx context.Context) {
	defer s.mgr.wg.Done()

	installDir := s.mgr.cfg.InstallDirFor(s.req.AppID)
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		s.logger.Error("create install directory failed", logging.Error(err))
		s.fail(steamcmd.ReasonCouldNotStart)
		return
	}

	handle, err := s.mgr.tool.Spawn(ctx, steamcmd.BuildArgs(s.req, installDir))
	if err != nil {
		s.logger.Error("steamcmd spawn failed", logging.Error(err))
		s.fail(steamcmd.ReasonCouldNotStart)
		return
	}

	s.mgr.mu.Lock()
	s.handle = handle
	alreadyCancelled := s.cancelRequested
	s.mgr.mu.Unlock()
	if alreadyCancelled {
		s.terminateWithGrace(handle)
	}

	startupTimeout := time.Duration(s.mgr.cfg.Downloads.StartupTimeout) * time.Second
	startupTimer := time.NewTimer(startupTimeout)
	defer startupTimer.Stop()

	done := ctx.Done()
	lines := handle.Lines()
	for lines != nil {
		select {
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			s.observe(line, startupTimer, startupTimeout)
		case <-startupTimer.C:
			if s.markStartupTimeout() {
				s.logger.Warn("no progress before startup deadline, terminating",
					logging.Duration("timeout", startupTimeout))
				s.terminateWithGrace(handle)
			}
		case <-done:
			done = nil
			s.mgr.mu.Lock()
			s.cancelRequested = true
			s.mgr.mu.Unlock()
			s.terminateWithGrace(handle)
		}
	}

	s.finalize(handle.Wait())
}

// observe applies the structured signals from one output line to the job.
// While the job is still starting, any line resets the inactivity clock.
func (s *supervisor) observe(line string, startupTimer *time.Timer, startupTimeout time.Duration) {
	events := steamcmd.Parse(line)

	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()

	s.tail = append(s.tail, line)
	if len(s.tail) > tailLimit {
		s.tail = s.tail[1:]
	}

	if s.job.Status == job.StatusStarting {
		if !startupTimer.Stop() {
			select {
			case <-startupTimer.C:
			default:
			}
		}
		startupTimer.Reset(startupTimeout)
	}

	for _, ev := range events {
		switch ev.Kind {
		case steamcmd.EventPhase:
			s.applyPhaseLocked(ev.Phase, startupTimer)
		case steamcmd.EventProgress:
			s.applyProgressLocked(ev.Percent, startupTimer)
		case steamcmd.EventSpeed:
			s.job.Speed = ev.Text
		case steamcmd.EventETA:
			s.job.ETA = ev.Text
		case steamcmd.EventSuccess:
			s.successSeen = true
		case steamcmd.EventErrorMarker:
			if s.markerReason == "" {
				s.markerReason = ev.Text
			}
		}
	}
}

func (s *supervisor) applyPhaseLocked(phase steamcmd.Phase, startupTimer *time.Timer) {
	if s.job.Status.IsTerminal() {
		return
	}
	switch phase {
	case steamcmd.PhaseDownloading:
		s.job.Status = job.StatusDownloading
	case steamcmd.PhaseValidating:
		if s.job.Status != job.StatusValidating {
			// Validation restarts its own percent scale.
			s.allowRegress = true
		}
		s.job.Status = job.StatusValidating
	}
	startupTimer.Stop()
}

func (s *supervisor) applyProgressLocked(percent float64, startupTimer *time.Timer) {
	if s.job.Status.IsTerminal() {
		return
	}
	if s.job.Status == job.StatusStarting {
		s.job.Status = job.StatusDownloading
		startupTimer.Stop()
	}
	// Exactly 100 is reserved for a confirmed completion.
	if percent > 99.9 {
		percent = 99.9
	}
	if s.allowRegress || percent >= s.job.Progress {
		s.job.Progress = percent
		s.allowRegress = false
	}
}

// markStartupTimeout reports whether the timeout should take effect. A fire
// that races a phase transition or a cancel request is ignored.
func (s *supervisor) markStartupTimeout() bool {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	if s.job.Status != job.StatusStarting || s.cancelRequested {
		return false
	}
	s.startupTimedOut = true
	return true
}

// terminateWithGrace asks the process to exit and schedules a forced kill.
// Killing an already-exited process is harmless.
func (s *supervisor) terminateWithGrace(handle steamcmd.Handle) {
	grace := time.Duration(s.mgr.cfg.Downloads.CancelGrace) * time.Second
	if err := handle.Terminate(); err != nil {
		_ = handle.Kill()
		return
	}
	time.AfterFunc(grace, func() {
		_ = handle.Kill()
	})
}

// finalize decides the terminal outcome once the process has exited.
// Cancellation wins every race; a zero exit only counts as success when the
// completion marker was seen.
func (s *supervisor) finalize(exitCode int) {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()

	var status job.Status
	var detail string
	switch {
	case s.cancelRequested:
		status = job.StatusCancelled
	case s.startupTimedOut:
		status, detail = job.StatusFailed, steamcmd.ReasonStartupTimeout
	case exitCode == 0 && s.successSeen:
		status = job.StatusCompleted
	case exitCode == 0:
		status, detail = job.StatusFailed, steamcmd.ReasonUnconfirmed
	case s.markerReason != "":
		status, detail = job.StatusFailed, s.markerReason
	default:
		status, detail = job.StatusFailed, steamcmd.Classify(strings.Join(s.tail, "\n"), exitCode)
	}
	s.mgr.finishLocked(s, status, detail, exitCode)
}

func (s *supervisor) fail(reason string) {
	s.mgr.mu.Lock()
	defer s.mgr.mu.Unlock()
	status, detail := job.StatusFailed, reason
	if s.cancelRequested {
		status, detail = job.StatusCancelled, ""
	}
	s.mgr.finishLocked(s, status, detail, -1)
}
