package pipeline

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framefarm/webmvert/internal/convert"
)

// newTestReporter returns a Reporter writing status lines into buf in
// non-TTY (line per report) mode.
func newTestReporter(log Logger, total int, buf *bytes.Buffer) *Reporter {
	r := NewReporter(log, total)
	r.out = buf
	r.tty = false
	return r
}

func TestReporter_ConcurrentReports(t *testing.T) {
	const total = 50
	var buf bytes.Buffer
	rep := newTestReporter(&testLogger{}, total, &buf)

	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome := convert.Converted
			if i%5 == 0 {
				outcome = convert.ErrorConverting
			}
			rep.Report(
				convert.Task{Path: fmt.Sprintf("/v/f%02d.mp4", i), Root: "/v"},
				convert.Result{Outcome: outcome, InputBytes: 100, OutputBytes: 40},
			)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, total, "one status line per report in non-TTY mode")

	// The counter is strictly monotonic: every value 1..total appears once.
	for n := 1; n <= total; n++ {
		prefix := fmt.Sprintf("[%d/%d]", n, total)
		found := 0
		for _, l := range lines {
			if strings.HasPrefix(l, prefix) {
				found++
			}
		}
		assert.Equal(t, 1, found, "counter value %d", n)
	}

	stats := rep.Stats()
	assert.Equal(t, 40, stats.Converted)
	assert.Equal(t, 10, stats.ErrorConverting)
	assert.Equal(t, total, stats.Processed())
	// Only the 40 converted results contribute to the byte totals.
	assert.Equal(t, int64(40*100), stats.InputBytes)
	assert.Equal(t, int64(40*40), stats.OutputBytes)
}

func TestReporter_StatusLineContents(t *testing.T) {
	var buf bytes.Buffer
	rep := newTestReporter(&testLogger{}, 2, &buf)

	rep.Report(convert.Task{Path: "/v/sub/a.mp4", Root: "/v"},
		convert.Result{Outcome: convert.Converted})
	rep.Report(convert.Task{Path: "/v/b.mov", Root: "/v"},
		convert.Result{Outcome: convert.ErrorSpawning})

	out := buf.String()
	assert.Contains(t, out, "[1/2]  50%")
	assert.Contains(t, out, "[2/2] 100%")
	assert.Contains(t, out, "sub/a.mp4")
	assert.Contains(t, out, "b.mov")
}

func TestReporter_LogLinesDoNotClobberStatus(t *testing.T) {
	log := &testLogger{}
	var buf bytes.Buffer
	rep := newTestReporter(log, 3, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rep.Warn("worker %d: encoder noise", i)
			rep.Report(convert.Task{Path: fmt.Sprintf("/v/%d.mp4", i), Root: "/v"},
				convert.Result{Outcome: convert.Converted})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, log.count("WARN"), "every worker log line reaches the logger")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
}

func TestReporter_DebugRespectsVerbose(t *testing.T) {
	log := &testLogger{}
	rep := newTestReporter(log, 0, &bytes.Buffer{})

	rep.Debug(false, "hidden")
	rep.Debug(true, "shown")

	assert.Equal(t, 1, log.count("DEBUG"))
}

func TestReporter_FinishSummary(t *testing.T) {
	log := &testLogger{}
	var buf bytes.Buffer
	rep := newTestReporter(log, 3, &buf)

	rep.Report(convert.Task{Path: "/v/a.mp4", Root: "/v"},
		convert.Result{Outcome: convert.Converted, InputBytes: 1000, OutputBytes: 300})
	rep.Report(convert.Task{Path: "/v/b.mp4", Root: "/v"},
		convert.Result{Outcome: convert.SkippedExists})
	rep.Report(convert.Task{Path: "/v/c.mp4", Root: "/v"},
		convert.Result{Outcome: convert.ErrorConverting})

	stats := rep.Finish(false)

	assert.Equal(t, 1, stats.Converted)
	assert.Equal(t, 1, stats.Skipped())
	assert.Equal(t, 1, stats.Failed())
	assert.Equal(t, int64(700), stats.SpaceSaved())

	joined := strings.Join(log.lines, "\n")
	assert.Contains(t, joined, "1 converted, 1 skipped, 1 failed")
	assert.Contains(t, joined, "Space saved")
}

func TestReporter_FinishDryRun(t *testing.T) {
	log := &testLogger{}
	rep := newTestReporter(log, 1, &bytes.Buffer{})

	rep.Report(convert.Task{Path: "/v/a.mp4", Root: "/v"},
		convert.Result{Outcome: convert.SkippedDryRun})
	rep.Finish(true)

	joined := strings.Join(log.lines, "\n")
	assert.Contains(t, joined, "dry run")
}

func TestReporter_FitPath(t *testing.T) {
	rep := &Reporter{width: 40, total: 9}

	short := "a.mp4"
	assert.Equal(t, short, rep.fitPath(short))

	long := "season-01/episode-with-a-long-name-01.mkv"
	fitted := rep.fitPath(long)
	assert.True(t, strings.HasPrefix(fitted, "..."), "long paths truncate from the left")
	assert.True(t, strings.HasSuffix(fitted, "01.mkv"), "the filename tail is preserved")
	assert.LessOrEqual(t, len(fitted), len(long))

	// Unknown width disables truncation.
	rep = &Reporter{width: 0, total: 9}
	assert.Equal(t, long, rep.fitPath(long))
}
