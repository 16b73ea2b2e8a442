package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into conversion, display, and utility sections. Short and
// long spellings register the same destination, so either form works.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// Version returns the build version string.
func Version() string { return version }

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, non-numeric --jobs,
// missing positional arg).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("webmvert", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var showHelp, showVersion, forceColor, noColor bool

	defineConversionFlags(fs, cfg)

	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "webmvert v"+version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}
	return applyCRFOverride(cfg)
}

// defineConversionFlags registers -j/--jobs, -d/--dry-run, --crf, --speed.
func defineConversionFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Jobs, "jobs", cfg.Jobs, "Number of concurrent conversions")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "Same as --jobs")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not convert or touch files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.StringVar(&cfg.CRFOverride, "crf", "", "Fixed CRF for every file (disables per-file quality selection)")
	fs.IntVar(&cfg.Speed, "speed", cfg.Speed, "VP9 encoder speed (-cpu-used, 0-8)")
}

// parsePositionalArgs sets InputDir from the single positional arg when not
// in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one target directory")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	return nil
}

// applyCRFOverride parses and range-checks the --crf value. VP9 accepts CRF
// 0-63.
func applyCRFOverride(cfg *Config) error {
	if cfg.CRFOverride == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(cfg.CRFOverride))
	if err != nil {
		return fmt.Errorf("CRF must be a whole number (got %q)", cfg.CRFOverride)
	}
	if n < 0 || n > 63 {
		return fmt.Errorf("CRF must be between 0 and 63 (got %d)", n)
	}
	cfg.FixedCRF = n
	cfg.HasFixedCRF = true
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "webmvert v" + version + " - batch WebM (VP9/Opus) converter"},
		{"", ""},
		{"  webmvert [OPTIONS] <dir>", ""},
		{"", ""},
		{"Conversion", ""},
		{"  -j, --jobs <n>", "Concurrent conversions (default: 1)"},
		{"  -d, --dry-run", "Preview only; no conversion, no file changes"},
		{"  --crf <value>", "Fixed CRF for every file (0-63)"},
		{"  --speed <n>", "VP9 encoder speed, 0=best 8=fastest (default: 1)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, VP9, Opus)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
