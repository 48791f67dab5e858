package main

import (
	"strings"
	"testing"
	"time"

	"steamfetch/internal/ipc"
)

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"downloading": "Downloading",
		"queued":      "Queued",
		" failed ":    "Failed",
	}
	for input, want := range cases {
		if got := statusLabel(input); got != want {
			t.Errorf("statusLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestColorizeStatus(t *testing.T) {
	plain := colorizeStatus("completed", false)
	if plain != "Completed" {
		t.Fatalf("plain label = %q", plain)
	}
	colored := colorizeStatus("completed", true)
	if !strings.Contains(colored, ansiGreen) || !strings.Contains(colored, ansiReset) {
		t.Fatalf("colored label = %q", colored)
	}
	if colorizeStatus("queued", true) != "Queued" {
		t.Fatal("queued should stay uncolored")
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("short input should pass through, got %q", got)
	}
}

func TestFormatWhen(t *testing.T) {
	if got := formatWhen(time.Time{}); got != "-" {
		t.Fatalf("zero time = %q", got)
	}
	stamp := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	if got := formatWhen(stamp); got != "2026-03-14 09:26:53" {
		t.Fatalf("formatted time = %q", got)
	}
}

func TestParsePosition(t *testing.T) {
	if _, err := parsePosition("0"); err == nil {
		t.Fatal("zero position should error")
	}
	if _, err := parsePosition("abc"); err == nil {
		t.Fatal("non-numeric position should error")
	}
	got, err := parsePosition("3")
	if err != nil || got != 3 {
		t.Fatalf("parsePosition(3) = %d, %v", got, err)
	}
}

func TestJobRowShape(t *testing.T) {
	view := ipc.JobView{
		ID:       "0123456789",
		AppID:    "440",
		Name:     "Team Fortress 2",
		Status:   "downloading",
		Progress: 42.5,
		Speed:    "12.3 MiB/s",
		ETA:      "0:40",
	}
	row := jobRow(view, false)
	if len(row) != len(jobHeaders) {
		t.Fatalf("row width %d, header width %d", len(row), len(jobHeaders))
	}
	if row[4] != "42.5%" {
		t.Fatalf("progress cell = %q", row[4])
	}
	if row[7] != "-" {
		t.Fatalf("empty detail should render as dash, got %q", row[7])
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"A", "B"},
		[][]string{{"1", "2"}, {"3"}},
		[]columnAlignment{alignRight, alignLeft},
	)
	if !strings.Contains(out, "A") || !strings.Contains(out, "3") {
		t.Fatalf("table output missing content: %q", out)
	}
}
