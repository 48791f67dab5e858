package download

import "steamfetch/internal/job"

// QueuedJob pairs a pending job with its one-based queue position.
type QueuedJob struct {
	Position int
	Job      job.Job
}

// Snapshot is a point-in-time view of the scheduler. Every job copy is
// detached from live state; mutating a snapshot has no effect on the manager.
type Snapshot struct {
	Active  []job.Job
	Queued  []QueuedJob
	History []job.Job
}
