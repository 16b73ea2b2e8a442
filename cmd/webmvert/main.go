// Command webmvert is the entrypoint for the batch WebM converter CLI.
// It parses flags, validates config and the target directory, verifies the
// external tools, and either runs system check (--check) or the conversion
// pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/framefarm/webmvert/internal/check"
	"github.com/framefarm/webmvert/internal/config"
	"github.com/framefarm/webmvert/internal/display"
	"github.com/framefarm/webmvert/internal/logging"
	"github.com/framefarm/webmvert/internal/pipeline"
)

func main() {
	// 1. Load config from defaults and CLI flags; exit on parse or
	// validation error.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "webmvert: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "webmvert: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "webmvert: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	display.PrintBanner()

	// 2. If user asked for system check, run it and exit successfully.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		os.Exit(0)
	}

	// 3. The target must exist and be a directory.
	fi, err := os.Stat(cfg.InputDir)
	if err != nil {
		log.Error("Target not found: %s", cfg.InputDir)
		os.Exit(1)
	}
	if !fi.IsDir() {
		log.Error("Target is not a directory: %s", cfg.InputDir)
		os.Exit(1)
	}

	log.Info("=== webmvert v%s ===", config.Version())
	log.Info("Target: %s", cfg.InputDir)
	log.Info("Jobs:   %d", cfg.Jobs)

	// 4. Ensure ffmpeg/ffprobe answer a version probe and the VP9/Opus
	// encoders work; fail fast before touching any files.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	// 5. Run the pipeline. SIGINT/SIGTERM stop admission and drain
	// in-flight conversions. Per-file failures do not affect the exit
	// code; the batch itself completed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline.Run(ctx, &cfg, log)
}
