package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs a single ffprobe JSON call against path, restricted to the
// first video stream, and returns the parsed summary. A nil error with a
// valid summary is the happy path; every failure mode (nonzero exit,
// unparsable output, no video stream, bad dimensions) is returned as an
// error so the caller can fall back to the default quality. A missing or
// non-numeric bit rate is tolerated and reported as unknown.
func Probe(ctx context.Context, bin, path string) (*Summary, error) {
	cmd := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,bit_rate",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		// cmd.Output captures stderr in the ExitError; its last line
		// carries ffprobe's actual diagnosis.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("ffprobe %q: %w: %s", path, err, stderrTail(exitErr.Stderr))
		}
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// stderrTail returns the last non-empty line of captured stderr.
func stderrTail(stderr []byte) string {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// ParseJSON converts raw ffprobe JSON output into a Summary.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Summary, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if len(raw.Streams) == 0 {
		return nil, errors.New("no video stream")
	}

	s := raw.Streams[0]
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", s.Width, s.Height)
	}

	return &Summary{
		Width:   s.Width,
		Height:  s.Height,
		BitRate: parseInt64(s.BitRate), // 0 when missing or non-numeric
	}, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	BitRate string `json:"bit_rate"`
}

// parseInt64 parses ffprobe's string-encoded numbers, returning 0 for
// missing or non-numeric values (e.g. "N/A").
func parseInt64(s string) int64 {
	s = strings.TrimSpace(s)
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
