// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, VP9, and Opus.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/framefarm/webmvert/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool is missing or
// broken.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrVP9NotUsable    = errors.New("libvpx-vp9 test encode failed")
	ErrOpusNotUsable   = errors.New("libopus test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, and the VP9/Opus encoders. This is informational only, it does
// not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkVersion(log, cfg.FFmpegBin)
	checkVersion(log, cfg.FFprobeBin)
	checkVP9(cfg, log)
	checkOpus(cfg, log)
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe answer a -version probe and that the VP9 and Opus encoders pass a
// short test encode. Returns a sentinel error on failure; no files have been
// touched at that point.
func CheckDeps(cfg *config.Config) error {
	if !runSilent(cfg.FFmpegBin, "-version") {
		return ErrFfmpegNotFound
	}
	if !runSilent(cfg.FFprobeBin, "-version") {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FFmpegBin, vp9TestArgs(cfg)...) {
		return ErrVP9NotUsable
	}
	if !runSilent(cfg.FFmpegBin, opusTestArgs(cfg)...) {
		return ErrOpusNotUsable
	}
	return nil
}

// --- internal helpers ---

// checkVersion verifies bin answers -version and logs its first output line.
func checkVersion(log Logger, bin string) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s", firstLine)
}

// checkVP9 runs a minimal libvpx-vp9 encode to verify video encoding works.
func checkVP9(cfg *config.Config, log Logger) {
	log.Info("Testing VP9 encoder...")
	if runSilent(cfg.FFmpegBin, vp9TestArgs(cfg)...) {
		log.Success("VP9 (%s) works", cfg.VideoEncoder)
	} else {
		log.Error("VP9 test encode failed")
	}
}

// checkOpus runs a minimal libopus encode to verify audio encoding works.
func checkOpus(cfg *config.Config, log Logger) {
	log.Info("Testing Opus encoder...")
	if runSilent(cfg.FFmpegBin, opusTestArgs(cfg)...) {
		log.Success("Opus (%s) works", cfg.AudioEncoder)
	} else {
		log.Error("Opus test encode failed")
	}
}

// vp9TestArgs returns the ffmpeg arguments for a minimal VP9 test encode.
// Shared by checkVP9 and CheckDeps to avoid duplicating the argument list.
func vp9TestArgs(cfg *config.Config) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", cfg.VideoEncoder,
		"-f", "null", "-",
	}
}

// opusTestArgs returns the ffmpeg arguments for a minimal Opus test encode.
func opusTestArgs(cfg *config.Config) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", cfg.AudioEncoder, "-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
