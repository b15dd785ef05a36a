package actions

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"voxport/internal/history"
	"voxport/internal/porter"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ConsoleReporter prints progress lines for the user and mirrors failures to the log.
// Per-record lines are held until Flush so they do not tear the spinner.
type ConsoleReporter struct {
	out     io.Writer
	pending bytes.Buffer
	logger  *slog.Logger
}

// NewConsoleReporter creates a reporter writing to out
func NewConsoleReporter(out io.Writer, logger *slog.Logger) *ConsoleReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleReporter{out: out, logger: logger}
}

func (r *ConsoleReporter) Listed(count int) {
	fmt.Fprintln(&r.pending, successStyle.Render(fmt.Sprintf("Found %d audios in history.", count)))
}

func (r *ConsoleReporter) Fetched(rec history.Record, size int) {
	fmt.Fprintf(&r.pending, "Downloaded: %s (%s)\n", rec.FileName(), humanize.Bytes(uint64(size)))
}

func (r *ConsoleReporter) Failed(rec history.Record, err error) {
	fmt.Fprintln(&r.pending, errorStyle.Render(fmt.Sprintf("Failed to download %s: %v", rec.FileName(), err)))
	r.logger.Debug("audio download failed", "historyItemId", rec.ID, "error", err)
}

// Flush prints the held per-record lines
func (r *ConsoleReporter) Flush() {
	r.pending.WriteTo(r.out)
}

// Warn prints a highlighted warning
func (r *ConsoleReporter) Warn(msg string) {
	r.Flush()
	fmt.Fprintln(r.out, warnStyle.Render(msg))
}

// Success prints a highlighted success line
func (r *ConsoleReporter) Success(msg string) {
	r.Flush()
	fmt.Fprintln(r.out, successStyle.Render(msg))
}

// WarnFailures lists the records that could not be downloaded, if any
func (r *ConsoleReporter) WarnFailures(summary porter.Summary) {
	if summary.Failed == 0 {
		return
	}
	r.Warn(fmt.Sprintf("%d audios could not be downloaded: %s", summary.Failed, strings.Join(summary.FailedIDs, ", ")))
}
