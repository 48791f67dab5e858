package steamcmd

import "testing"

func findEvent(events []Event, kind EventKind) (Event, bool) {
	for _, event := range events {
		if event.Kind == kind {
			return event, true
		}
	}
	return Event{}, false
}

func TestParseUpdateStateLine(t *testing.T) {
	events := Parse("Update state (0x61) downloading, progress: 45.23 (2342 / 5177)")
	phase, ok := findEvent(events, EventPhase)
	if !ok || phase.Phase != PhaseDownloading {
		t.Fatalf("expected downloading phase event, got %+v", events)
	}
	progress, ok := findEvent(events, EventProgress)
	if !ok || progress.Percent != 45.23 {
		t.Fatalf("expected 45.23 percent, got %+v", events)
	}
}

func TestParseValidatingPhase(t *testing.T) {
	events := Parse("Update state (0x5) verifying install, progress: 12.50 (100 / 800)")
	phase, ok := findEvent(events, EventPhase)
	if !ok || phase.Phase != PhaseValidating {
		t.Fatalf("expected validating phase event, got %+v", events)
	}
	if events[0].Kind != EventPhase {
		t.Fatalf("phase event must precede progress, got %+v", events)
	}
}

func TestParseBareProgressLine(t *testing.T) {
	events := Parse("Progress: 45.0%")
	progress, ok := findEvent(events, EventProgress)
	if !ok || progress.Percent != 45.0 {
		t.Fatalf("expected 45.0 percent, got %+v", events)
	}
	if _, ok := findEvent(events, EventPhase); ok {
		t.Fatalf("bare progress line must not signal a phase, got %+v", events)
	}
}

func TestParseClampsPercent(t *testing.T) {
	events := Parse("Progress: 240.0%")
	progress, ok := findEvent(events, EventProgress)
	if !ok || progress.Percent != 100 {
		t.Fatalf("expected clamped percent, got %+v", events)
	}
}

func TestParseMultipleSignalsOnOneLine(t *testing.T) {
	events := Parse("Update state (0x61) downloading, progress: 80.10 at 11.5 MB/s ETA 00:02:31")
	if _, ok := findEvent(events, EventPhase); !ok {
		t.Fatalf("expected phase event, got %+v", events)
	}
	if _, ok := findEvent(events, EventProgress); !ok {
		t.Fatalf("expected progress event, got %+v", events)
	}
	speed, ok := findEvent(events, EventSpeed)
	if !ok || speed.Text != "11.5 MB/s" {
		t.Fatalf("expected speed event, got %+v", events)
	}
	eta, ok := findEvent(events, EventETA)
	if !ok || eta.Text != "00:02:31" {
		t.Fatalf("expected eta event, got %+v", events)
	}
}

func TestParseSuccessMarker(t *testing.T) {
	events := Parse("Success! App '730' fully installed.")
	if _, ok := findEvent(events, EventSuccess); !ok {
		t.Fatalf("expected success event, got %+v", events)
	}
}

func TestParseErrorMarker(t *testing.T) {
	events := Parse("FAILED (Invalid Password)")
	marker, ok := findEvent(events, EventErrorMarker)
	if !ok || marker.Text != ReasonAuthFailed {
		t.Fatalf("expected auth failure marker, got %+v", events)
	}
}

func TestParseIgnoresNoise(t *testing.T) {
	lines := []string{
		"",
		"Redirecting stderr to '/root/Steam/logs/stderr.txt'",
		"-- type 'quit' to exit --",
		"Loading Steam API...OK",
		"Update state (0x3) reconfiguring, progress: 0.00",
		"Progress: garbage%",
		"\xff\xfe\x00broken",
	}
	for _, line := range lines {
		if events := Parse(line); len(events) != 0 {
			t.Fatalf("expected no events for %q, got %+v", line, events)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	output := "warming up\nSteam Guard\nInvalid Password\n"
	if got := Classify(output, 8); got != ReasonAuthFailed {
		t.Fatalf("expected first table match, got %q", got)
	}
}

func TestClassifyTable(t *testing.T) {
	cases := map[string]string{
		"FAILED (Invalid Password)":          ReasonAuthFailed,
		"FAILED (Invalid Username)":          ReasonAuthFailed,
		"Login Failure: connection reset":    ReasonAuthFailed,
		"No subscription for app":            ReasonNotEntitled,
		"Need two-factor code from mobile":   ReasonGuardRequired,
		"please confirm via Steam Guard":     ReasonGuardRequired,
		"ERROR! Rate Limited":                ReasonRateLimited,
		"request was rate limited, back off": ReasonRateLimited,
	}
	for output, want := range cases {
		if got := Classify(output, 1); got != want {
			t.Fatalf("Classify(%q) = %q, want %q", output, got, want)
		}
	}
}

func TestClassifyFallbackIncludesExitCode(t *testing.T) {
	if got := Classify("nothing recognizable", 42); got != "unspecified failure (exit code 42)" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestClassifyIsCaseSensitive(t *testing.T) {
	if got := Classify("invalid password", 3); got != "unspecified failure (exit code 3)" {
		t.Fatalf("expected case-sensitive matching, got %q", got)
	}
}
