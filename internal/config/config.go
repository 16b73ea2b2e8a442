// Package config holds runtime configuration: defaults, CLI flag parsing,
// and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// Container is the target container format. Sources already in this
// container are excluded from discovery.
type Container string

const (
	// ContainerWebM is the only supported target (VP9 video, Opus audio).
	ContainerWebM Container = "webm"
)

// Ext returns the container's file extension with a leading dot.
func (c Container) Ext() string { return "." + string(c) }

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Conversion root (positional arg).
	InputDir string

	// Concurrency: number of files converted in parallel.
	Jobs int // Default: 1.

	// Encoder settings.
	OutputContainer Container // Fixed: "webm".
	VideoEncoder    string    // Fixed default: "libvpx-vp9".
	AudioEncoder    string    // Fixed default: "libopus".
	AudioBitrate    string    // Default: "128k".
	Speed           int       // VP9 -cpu-used. Default: 1.

	// Quality overrides (populated during flag parsing).
	CRFOverride string // --crf raw value.
	FixedCRF    int    // Parsed override; valid only when HasFixedCRF.
	HasFixedCRF bool

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// External tool binaries. Not user-configurable; tests point these at
	// stub executables.
	FFmpegBin  string
	FFprobeBin string
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		Jobs:            1,
		OutputContainer: ContainerWebM,
		VideoEncoder:    "libvpx-vp9",
		AudioEncoder:    "libopus",
		AudioBitrate:    "128k",
		Speed:           1,
		ColorMode:       ColorAuto,
		FFmpegBin:       "ffmpeg",
		FFprobeBin:      "ffprobe",
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks field values after flag parsing. When not in CheckOnly
// mode it also requires the input directory argument.
func (c *Config) Validate() error {
	switch c.OutputContainer {
	case ContainerWebM:
		// valid
	default:
		return fmt.Errorf("invalid container %q (only 'webm' is supported)", c.OutputContainer)
	}

	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be a positive integer (got %d)", c.Jobs)
	}
	if c.Speed < 0 || c.Speed > 8 {
		return fmt.Errorf("speed must be between 0 and 8 (got %d)", c.Speed)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need exactly one target directory")
	}
	return nil
}
