package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/framefarm/webmvert/internal/convert"
	"github.com/framefarm/webmvert/internal/display"
	"github.com/framefarm/webmvert/internal/term"
)

// Outcome glyph styles.
var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	skipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Reporter serializes all terminal output during a batch run: the in-place
// single-line progress status and, via the Logger passthrough methods, every
// log line the workers emit. The single mutex means no two workers can
// interleave writes, and log lines always clear the status line first and
// reprint it after, so error text is never clobbered by the in-place
// overwrite.
//
// Reporter implements [Logger] and [convert.Logger].
type Reporter struct {
	mu  sync.Mutex
	log Logger
	out io.Writer

	tty   bool
	width int

	total    int
	done     int // processed counter; strictly monotonic
	lastLine string
	lastLen  int

	stats Stats
}

// NewReporter returns a Reporter for a batch of total tasks, writing status
// lines to stdout and delegating log lines to log.
func NewReporter(log Logger, total int) *Reporter {
	return &Reporter{
		log:   log,
		out:   os.Stdout,
		tty:   term.IsTerminal(os.Stdout),
		width: term.Width(os.Stdout),
		total: total,
		stats: Stats{Total: total},
	}
}

// Report records the terminal result of one task. Called exactly once per
// task, from whichever worker completed it. Atomically increments the
// processed counter, tallies the outcome, and renders the status line.
func (r *Reporter) Report(task convert.Task, res convert.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.add(res)
	r.done++

	pct := 0
	if r.total > 0 {
		pct = r.done * 100 / r.total
	}

	rel := r.fitPath(task.RelPath())
	line := fmt.Sprintf("[%d/%d] %3d%% %s %s", r.done, r.total, pct, glyph(res.Outcome), rel)

	r.clearStatus()
	if !r.tty {
		fmt.Fprintln(r.out, line)
		return
	}
	fmt.Fprint(r.out, line)
	r.lastLine = line
	r.lastLen = lipgloss.Width(line)
}

// Finish terminates the status line and logs the batch summary. Returns the
// final stats.
func (r *Reporter) Finish(dryRun bool) Stats {
	r.mu.Lock()
	if r.tty && r.lastLen > 0 {
		fmt.Fprintln(r.out)
		r.lastLine = ""
		r.lastLen = 0
	}
	stats := r.stats
	r.mu.Unlock()

	r.log.Info("==============================")
	r.log.Info("Done: %d converted, %d skipped, %d failed",
		stats.Converted, stats.Skipped(), stats.Failed())

	logErrorKind(r.log, stats.ErrorConverting, convert.ErrorConverting)
	logErrorKind(r.log, stats.ErrorSpawning, convert.ErrorSpawning)
	logErrorKind(r.log, stats.ErrorDeletingSource, convert.ErrorDeletingSource)
	logErrorKind(r.log, stats.ErrorUnexpected, convert.ErrorUnexpected)

	if dryRun {
		r.log.Info("Space saved: n/a (dry run)")
	} else if stats.Converted > 0 {
		r.log.Success("Space saved: %s (input %s -> output %s)",
			display.FormatBytes(stats.SpaceSaved()),
			display.FormatBytes(stats.InputBytes),
			display.FormatBytes(stats.OutputBytes))
	}
	return stats
}

func logErrorKind(log Logger, n int, o convert.Outcome) {
	if n > 0 {
		log.Warn("  %d x %s", n, o)
	}
}

// Stats returns a snapshot of the current tallies.
func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// --- Logger passthrough: clear status line, log, reprint below ---

// Info logs through the underlying logger without disturbing the status line.
func (r *Reporter) Info(format string, args ...interface{}) {
	r.emit(func() { r.log.Info(format, args...) })
}

// Success logs through the underlying logger.
func (r *Reporter) Success(format string, args ...interface{}) {
	r.emit(func() { r.log.Success(format, args...) })
}

// Warn logs through the underlying logger.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.emit(func() { r.log.Warn(format, args...) })
}

// Error logs through the underlying logger.
func (r *Reporter) Error(format string, args ...interface{}) {
	r.emit(func() { r.log.Error(format, args...) })
}

// Debug logs through the underlying logger when verbose is set.
func (r *Reporter) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	r.emit(func() { r.log.Debug(true, format, args...) })
}

func (r *Reporter) emit(write func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearStatus()
	write()
	r.redrawStatus()
}

func (r *Reporter) clearStatus() {
	if r.tty && r.lastLen > 0 {
		fmt.Fprint(r.out, "\r"+strings.Repeat(" ", r.lastLen)+"\r")
	}
}

func (r *Reporter) redrawStatus() {
	if r.tty && r.lastLine != "" {
		fmt.Fprint(r.out, r.lastLine)
	}
}

// fitPath truncates a relative path from the left so the status line fits
// the terminal. The "[n/total] pct% g " prefix is bounded by the counter
// width; 16 columns of slack covers it.
func (r *Reporter) fitPath(rel string) string {
	if r.width <= 0 {
		return rel
	}
	maxRel := r.width - 16 - 2*len(fmt.Sprint(r.total))
	if maxRel < 8 || len(rel) <= maxRel {
		return rel
	}
	return "..." + rel[len(rel)-maxRel+3:]
}

func glyph(o convert.Outcome) string {
	switch {
	case o == convert.Converted:
		return successStyle.Render("✓")
	case o.IsSkip():
		return skipStyle.Render("-")
	default:
		return errorStyle.Render("✗")
	}
}
