// Package convert invokes the external encoder for one file at a time and
// owns the post-encode cleanup: delete-source on success, partial-output
// removal and quarantine on failure.
package convert

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/framefarm/webmvert/internal/config"
)

// Logger is the minimal logging interface the converter needs. The pipeline
// passes its progress reporter here so error text and the status line never
// clobber each other.
type Logger interface {
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Converter runs ffmpeg for individual files. Safe for concurrent use: it
// holds no per-file state.
type Converter struct {
	cfg *config.Config
	log Logger
}

// New returns a Converter using cfg's encoder settings and binaries.
func New(cfg *config.Config, log Logger) *Converter {
	return &Converter{cfg: cfg, log: log}
}

// OutputPath returns the deterministic output path for a source file: same
// directory, same stem, target container extension.
func OutputPath(path string, container config.Container) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + container.Ext()
}

// Convert runs the per-file state machine: dry-run short-circuit, skip when
// the output exists, encode, then cleanup. It always returns a terminal
// Result; per-file failures are logged and classified, never propagated.
// Once started, the encode runs to completion: batch interruption stops
// admission upstream and never kills an in-flight encoder, so a healthy
// source cannot end up in the failure path.
func (c *Converter) Convert(task Task, crf int) Result {
	outPath := OutputPath(task.Path, c.cfg.OutputContainer)

	if c.cfg.DryRun {
		return Result{Outcome: SkippedDryRun}
	}

	if _, err := os.Stat(outPath); err == nil {
		c.log.Debug(c.cfg.Verbose, "Output exists, skipping: %s", filepath.Base(outPath))
		return Result{Outcome: SkippedExists}
	}

	inBytes := int64(0)
	if fi, err := os.Stat(task.Path); err == nil {
		inBytes = fi.Size()
	}

	res := c.execute(task.Path, outPath, crf)
	if res.Err != nil {
		outcome := ErrorConverting
		var exitErr *exec.ExitError
		if !errors.As(res.Err, &exitErr) {
			// Process never ran (binary missing, permissions, ...).
			outcome = ErrorSpawning
			c.log.Error("Cannot start encoder for %s: %v", task.RelPath(), res.Err)
		} else {
			c.log.Error("Encode failed for %s (exit status %d)", task.RelPath(), exitErr.ExitCode())
		}
		c.logStderr(res.Stderr)
		c.removePartial(outPath)
		c.Quarantine(task)
		return Result{Outcome: outcome}
	}

	outBytes := int64(0)
	if fi, err := os.Stat(outPath); err == nil {
		outBytes = fi.Size()
	}

	if err := os.Remove(task.Path); err != nil {
		c.log.Error("Converted but cannot delete source %s: %v", task.RelPath(), err)
		return Result{Outcome: ErrorDeletingSource, InputBytes: inBytes, OutputBytes: outBytes}
	}

	return Result{Outcome: Converted, InputBytes: inBytes, OutputBytes: outBytes}
}

// execResult holds the outcome of a single ffmpeg invocation.
type execResult struct {
	Stderr string
	Err    error
}

// execute builds and runs the ffmpeg command for a file, capturing stderr
// for diagnostics. Deliberately not context-bound: cancelling mid-encode
// would surface as a nonzero exit and misclassify the source as broken.
func (c *Converter) execute(inPath, outPath string, crf int) execResult {
	args := buildArgs(c.cfg, inPath, outPath, crf)

	cmd := exec.Command(c.cfg.FFmpegBin, args...)

	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	return execResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// buildArgs constructs the complete ffmpeg argument slice for a file.
func buildArgs(cfg *config.Config, inPath, outPath string, crf int) []string {
	args := make([]string, 0, 24)

	// -n: never overwrite; the exists-check above makes this a race guard.
	args = append(args, "-hide_banner", "-nostdin", "-n", "-loglevel", "error")

	args = append(args, "-i", inPath)

	args = append(args,
		"-c:v", cfg.VideoEncoder,
		"-crf", strconv.Itoa(crf),
		"-b:v", "0",
		"-row-mt", "1",
		"-cpu-used", strconv.Itoa(cfg.Speed),
	)

	args = append(args,
		"-c:a", cfg.AudioEncoder,
		"-b:a", cfg.AudioBitrate,
	)

	args = append(args, outPath)
	return args
}

// removePartial deletes a partially-written output file. Best effort:
// failures are logged but non-fatal.
func (c *Converter) removePartial(outPath string) {
	if _, err := os.Stat(outPath); err != nil {
		return
	}
	if err := os.Remove(outPath); err != nil {
		c.log.Warn("Cannot remove partial output %s: %v", outPath, err)
	}
}

// logStderr logs the tail of the captured encoder stderr.
func (c *Converter) logStderr(stderr string) {
	if strings.TrimSpace(stderr) == "" {
		return
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 10 {
		start = len(lines) - 10
	}
	c.log.Error("Last encoder output:")
	for _, l := range lines[start:] {
		c.log.Error("  %s", l)
	}
}
