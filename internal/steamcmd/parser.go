package steamcmd

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Phase identifies the download phase signalled by a progress line.
type Phase string

const (
	PhaseDownloading Phase = "downloading"
	PhaseValidating  Phase = "validating"
)

// EventKind enumerates the structured signals the parser can extract.
type EventKind int

const (
	// EventPhase signals a phase change. Emitted before any progress event
	// parsed from the same line so phase resets apply first.
	EventPhase EventKind = iota
	// EventProgress carries a percent value clamped to [0,100].
	EventProgress
	// EventSpeed carries a human-facing transfer rate string.
	EventSpeed
	// EventETA carries a human-facing remaining-time string.
	EventETA
	// EventSuccess signals the textual completion marker.
	EventSuccess
	// EventErrorMarker carries a classified failure reason seen in output.
	EventErrorMarker
)

// Event is one structured signal extracted from a raw output line.
type Event struct {
	Kind    EventKind
	Phase   Phase
	Percent float64
	Text    string
}

// SuccessMarker is the textual signal SteamCMD prints on a confirmed install.
// Exit codes alone are unreliable; completion requires both a zero exit code
// and this marker in the output.
const SuccessMarker = "Success! App '"

var (
	updateStateRe = regexp.MustCompile(`Update state \(0x[0-9a-fA-F]+\) ([a-z][a-z ]*?), progress: ([0-9]+(?:\.[0-9]+)?)`)
	progressRe    = regexp.MustCompile(`Progress: *([0-9]+(?:\.[0-9]+)?) *%?`)
	speedRe       = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?) *([KMG]?i?B)/s`)
	etaRe         = regexp.MustCompile(`(?i)\bETA[: ] *([0-9]+(?::[0-9]{2}){1,2})`)
)

// Parse extracts zero or more events from one raw output line. A single line
// may carry several signals (phase, percent, and speed commonly co-occur).
// Garbled, truncated, or non-UTF8 lines yield no events.
func Parse(line string) []Event {
	if line == "" || !utf8.ValidString(line) {
		return nil
	}

	var events []Event

	if m := updateStateRe.FindStringSubmatch(line); m != nil {
		// Update-state lines for unrecognized phases (reconfiguring,
		// committing) carry percent values that do not describe the
		// transfer; only downloading/verifying states count.
		if phase, ok := phaseForWord(m[1]); ok {
			events = append(events, Event{Kind: EventPhase, Phase: phase})
			if percent, ok := parsePercent(m[2]); ok {
				events = append(events, Event{Kind: EventProgress, Percent: percent})
			}
		}
	} else if m := progressRe.FindStringSubmatch(line); m != nil {
		if percent, ok := parsePercent(m[1]); ok {
			events = append(events, Event{Kind: EventProgress, Percent: percent})
		}
	}

	if m := speedRe.FindStringSubmatch(line); m != nil {
		events = append(events, Event{Kind: EventSpeed, Text: m[1] + " " + m[2] + "/s"})
	}
	if m := etaRe.FindStringSubmatch(line); m != nil {
		events = append(events, Event{Kind: EventETA, Text: m[1]})
	}
	if strings.Contains(line, SuccessMarker) {
		events = append(events, Event{Kind: EventSuccess})
	}
	if reason, ok := matchFailureReason(line); ok {
		events = append(events, Event{Kind: EventErrorMarker, Text: reason})
	}

	return events
}

func phaseForWord(word string) (Phase, bool) {
	word = strings.TrimSpace(word)
	switch {
	case strings.Contains(word, "download"):
		return PhaseDownloading, true
	case strings.Contains(word, "verify"), strings.Contains(word, "validat"):
		return PhaseValidating, true
	default:
		return "", false
	}
}

func parsePercent(value string) (float64, bool) {
	percent, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent, true
}
