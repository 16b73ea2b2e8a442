package pipeline

import (
	"github.com/framefarm/webmvert/internal/convert"
)

// Stats tracks per-outcome counters and byte totals across a batch run.
type Stats struct {
	Total int

	Converted     int
	SkippedDryRun int
	SkippedExists int

	ErrorConverting     int
	ErrorDeletingSource int
	ErrorSpawning       int
	ErrorUnexpected     int

	InputBytes  int64
	OutputBytes int64
}

func (s *Stats) add(res convert.Result) {
	switch res.Outcome {
	case convert.Converted:
		s.Converted++
	case convert.SkippedDryRun:
		s.SkippedDryRun++
	case convert.SkippedExists:
		s.SkippedExists++
	case convert.ErrorConverting:
		s.ErrorConverting++
	case convert.ErrorDeletingSource:
		s.ErrorDeletingSource++
	case convert.ErrorSpawning:
		s.ErrorSpawning++
	case convert.ErrorUnexpected:
		s.ErrorUnexpected++
	}
	// Byte totals count only fully converted files. On ErrorDeletingSource
	// the source remains on disk, so no space was actually saved.
	if res.Outcome == convert.Converted {
		s.InputBytes += res.InputBytes
		s.OutputBytes += res.OutputBytes
	}
}

// Processed returns how many tasks reached a terminal outcome.
func (s *Stats) Processed() int {
	return s.Converted + s.Skipped() + s.Failed()
}

// Skipped returns the total of the skip classes.
func (s *Stats) Skipped() int {
	return s.SkippedDryRun + s.SkippedExists
}

// Failed returns the total of the error classes.
func (s *Stats) Failed() int {
	return s.ErrorConverting + s.ErrorDeletingSource + s.ErrorSpawning + s.ErrorUnexpected
}

// SpaceSaved returns the aggregate byte difference between converted inputs
// and their outputs. Positive means outputs are smaller.
func (s *Stats) SpaceSaved() int64 {
	return s.InputBytes - s.OutputBytes
}
