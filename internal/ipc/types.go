package ipc

import (
	"time"

	"steamfetch/internal/download"
	"steamfetch/internal/job"
)

// JobView is the wire representation of a download job. Credentials never
// appear here; they stay inside the daemon.
type JobView struct {
	ID          string    `json:"id"`
	AppID       string    `json:"app_id"`
	Name        string    `json:"name"`
	Anonymous   bool      `json:"anonymous"`
	Validate    bool      `json:"validate"`
	Status      string    `json:"status"`
	Progress    float64   `json:"progress"`
	Speed       string    `json:"speed"`
	ETA         string    `json:"eta"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	TerminalAt  time.Time `json:"terminal_at,omitempty"`
}

// QueuedView pairs a pending job with its one-based queue position.
type QueuedView struct {
	Position int     `json:"position"`
	Job      JobView `json:"job"`
}

// FromJob converts a job model to its wire form.
func FromJob(j job.Job) JobView {
	return JobView{
		ID:          j.ID,
		AppID:       j.AppID,
		Name:        j.Name,
		Anonymous:   j.Anonymous,
		Validate:    j.Validate,
		Status:      j.Status.String(),
		Progress:    j.Progress,
		Speed:       j.Speed,
		ETA:         j.ETA,
		ErrorDetail: j.ErrorDetail,
		SubmittedAt: j.SubmittedAt,
		StartedAt:   j.StartedAt,
		TerminalAt:  j.TerminalAt,
	}
}

func fromJobs(jobs []job.Job) []JobView {
	if len(jobs) == 0 {
		return nil
	}
	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, FromJob(j))
	}
	return views
}

func fromSnapshot(snap download.Snapshot) (active []JobView, queued []QueuedView, history []JobView) {
	active = fromJobs(snap.Active)
	history = fromJobs(snap.History)
	for _, entry := range snap.Queued {
		queued = append(queued, QueuedView{Position: entry.Position, Job: FromJob(entry.Job)})
	}
	return active, queued, history
}

// SubmitRequest enqueues a download.
type SubmitRequest struct {
	AppID     string `json:"app_id"`
	Name      string `json:"name,omitempty"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
	GuardCode string `json:"guard_code,omitempty"`
	Validate  bool   `json:"validate,omitempty"`
}

// SubmitResponse carries the accepted job.
type SubmitResponse struct {
	Job JobView `json:"job"`
}

// CancelRequest stops a job by ID.
type CancelRequest struct {
	ID string `json:"id"`
}

// CancelResponse reports cancel outcome.
type CancelResponse struct {
	Cancelled bool   `json:"cancelled"`
	Message   string `json:"message,omitempty"`
}

// StatusRequest fetches the full daemon view.
type StatusRequest struct{}

// StatusResponse combines daemon runtime information with a scheduler
// snapshot.
type StatusResponse struct {
	Running       bool         `json:"running"`
	StartedAt     time.Time    `json:"started_at,omitempty"`
	LockPath      string       `json:"lock_path"`
	SocketPath    string       `json:"socket_path"`
	MaxConcurrent int          `json:"max_concurrent"`
	PID           int          `json:"pid"`
	Active        []JobView    `json:"active,omitempty"`
	Queued        []QueuedView `json:"queued,omitempty"`
	History       []JobView    `json:"history,omitempty"`
}

// QueueRemoveRequest drops a pending job by position.
type QueueRemoveRequest struct {
	Position int `json:"position"`
}

// QueueRemoveResponse carries the removed job.
type QueueRemoveResponse struct {
	Job JobView `json:"job"`
}

// QueueMoveRequest reorders the pending queue.
type QueueMoveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// QueueMoveResponse reports move outcome.
type QueueMoveResponse struct {
	Moved bool `json:"moved"`
}

// StopRequest stops download processing.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
