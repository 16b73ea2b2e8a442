package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/framefarm/webmvert/internal/config"
	"github.com/framefarm/webmvert/internal/convert"
	"github.com/framefarm/webmvert/internal/display"
	"github.com/framefarm/webmvert/internal/probe"
	"github.com/framefarm/webmvert/internal/quality"
)

// Run is the top-level batch entry point. It discovers files under the
// conversion root, then runs up to cfg.Jobs per-file pipelines concurrently
// until every task has a terminal outcome.
//
// Admission follows discovery order: the errgroup's limit makes Go block
// while cfg.Jobs pipelines are in flight, and each completion frees a slot
// for the next queued task. Wait resolves only when the queue is drained and
// no pipeline is in flight, so there is no completion polling. Workers
// always return nil; per-file failures become outcomes, never group errors.
// A cancelled ctx stops admission between tasks and drains in-flight work.
func Run(ctx context.Context, cfg *config.Config, log Logger) Stats {
	tasks := Discover(cfg.InputDir, cfg.OutputContainer, log)

	log.Info("Found %d files", len(tasks))
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be converted or touched")
	}

	rep := NewReporter(log, len(tasks))
	conv := convert.New(cfg, rep)

	g := new(errgroup.Group)
	g.SetLimit(cfg.Jobs)

	interrupted := false
	for _, task := range tasks {
		if ctx.Err() != nil {
			interrupted = true
			break
		}
		task := task
		g.Go(func() error {
			rep.Report(task, runOne(cfg, conv, rep, task))
			return nil
		})
	}
	_ = g.Wait()

	if interrupted {
		rep.Warn("Interrupted; remaining files were not processed")
	}
	return rep.Finish(cfg.DryRun)
}

// runOne executes one file's pipeline: probe, decide quality, convert. It
// always produces a terminal result; a panic anywhere inside the pipeline is
// recovered here so a single file can never abort the batch. An admitted
// task drains: probe and encode run free of the batch context, so an
// interrupt never kills in-flight work.
func runOne(cfg *config.Config, conv *convert.Converter, rep *Reporter, task convert.Task) (res convert.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			rep.Error("Unexpected failure on %s: %v", task.RelPath(), rec)
			res = convert.Result{Outcome: convert.ErrorUnexpected}
		}
	}()

	// Dry run never spawns a process, not even the probe.
	if cfg.DryRun {
		return conv.Convert(task, quality.DefaultCRF)
	}

	crf := cfg.FixedCRF
	if !cfg.HasFixedCRF {
		sum, err := probe.Probe(context.Background(), cfg.FFprobeBin, task.Path)
		if err != nil {
			rep.Warn("Cannot inspect %s, using default CRF %d: %v", task.RelPath(), quality.DefaultCRF, err)
			sum = nil
		}
		crf = quality.Decide(sum)
		if sum != nil {
			rep.Debug(cfg.Verbose, "%s: %s, %s, tier=%s, crf=%d",
				task.RelPath(), sum.Resolution(),
				display.FormatBitrateLabel(sum.BitRate/1000),
				quality.TierName(sum), crf)
		}
	}

	return conv.Convert(task, crf)
}
