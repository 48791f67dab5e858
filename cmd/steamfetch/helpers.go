package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"steamfetch/internal/ipc"
	"steamfetch/internal/job"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

var titleCaser = cases.Title(language.Und)

// statusLabel renders a job status for table output.
func statusLabel(status string) string {
	return titleCaser.String(strings.TrimSpace(status))
}

func statusColor(status string) string {
	parsed, ok := job.ParseStatus(status)
	if !ok {
		return ""
	}
	switch parsed {
	case job.StatusCompleted:
		return ansiGreen
	case job.StatusFailed:
		return ansiRed
	case job.StatusCancelled:
		return ansiYellow
	case job.StatusQueued:
		return ""
	default:
		return ansiBlue
	}
}

func colorizeStatus(status string, colorize bool) string {
	label := statusLabel(status)
	if !colorize {
		return label
	}
	if color := statusColor(status); color != "" {
		return color + label + ansiReset
	}
	return label
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatWhen(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04:05")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func jobRow(view ipc.JobView, colorize bool) []string {
	detail := view.ErrorDetail
	if detail == "" {
		detail = "-"
	}
	return []string{
		shortID(view.ID),
		view.AppID,
		view.Name,
		colorizeStatus(view.Status, colorize),
		formatPercent(view.Progress),
		view.Speed,
		view.ETA,
		detail,
	}
}

var jobHeaders = []string{"ID", "App", "Name", "Status", "Progress", "Speed", "ETA", "Detail"}

var jobAligns = []columnAlignment{
	alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft,
}
