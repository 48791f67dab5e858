package download

import "steamfetch/internal/job"

// history keeps the most recent finished jobs in a fixed-size ring. It holds
// at most limit entries; appending past the limit overwrites the oldest slot.
// Callers synchronize access through the manager mutex.
type history struct {
	entries []job.Job
	start   int
	count   int
}

func newHistory(limit int) *history {
	if limit < 1 {
		limit = 1
	}
	return &history{entries: make([]job.Job, limit)}
}

func (h *history) Append(entry job.Job) {
	limit := len(h.entries)
	if h.count < limit {
		h.entries[(h.start+h.count)%limit] = entry
		h.count++
		return
	}
	h.entries[h.start] = entry
	h.start = (h.start + 1) % limit
}

// List returns a fresh oldest-first copy of the retained entries.
func (h *history) List() []job.Job {
	out := make([]job.Job, h.count)
	for i := range h.count {
		out[i] = h.entries[(h.start+i)%len(h.entries)]
	}
	return out
}

func (h *history) Len() int {
	return h.count
}
