// Package pipeline orchestrates file discovery, the bounded-concurrency
// conversion workers, and batch progress reporting.
//
// Discovery produces tasks in deterministic order; the scheduler admits them
// to at most cfg.Jobs concurrent per-file pipelines (probe, quality
// decision, convert, cleanup); every pipeline terminates in exactly one
// outcome which the reporter tallies and renders. Per-file failures never
// abort the batch.
package pipeline
