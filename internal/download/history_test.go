package download

import (
	"testing"

	"steamfetch/internal/job"
)

func TestHistoryKeepsPartialFillInOrder(t *testing.T) {
	h := newHistory(4)
	h.Append(job.Job{ID: "a"})
	h.Append(job.Job{ID: "b"})

	got := h.List()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("list = %+v, want a then b", got)
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
}

func TestHistoryEvictsOldestOnWrap(t *testing.T) {
	h := newHistory(3)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		h.Append(job.Job{ID: id})
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	got := h.List()
	want := []string{"c", "d", "e"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("oldest-first order = %+v, want %v", got, want)
		}
	}
}

func TestHistoryClampsZeroLimit(t *testing.T) {
	h := newHistory(0)
	h.Append(job.Job{ID: "a"})
	h.Append(job.Job{ID: "b"})

	got := h.List()
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("list = %+v, want only b", got)
	}
}
