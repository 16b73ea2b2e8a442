package convert

// Outcome is the terminal classification of one file's pipeline run.
// Exactly one Outcome is produced per Task.
type Outcome int

const (
	// Converted: encode succeeded and the source was deleted.
	Converted Outcome = iota
	// SkippedDryRun: dry-run mode, nothing was touched.
	SkippedDryRun
	// SkippedExists: the output file already existed; source left alone.
	SkippedExists
	// ErrorConverting: the encoder exited nonzero; partial output removed,
	// source quarantined.
	ErrorConverting
	// ErrorDeletingSource: encode succeeded but the source could not be
	// deleted. The output is valid; source and output both remain.
	ErrorDeletingSource
	// ErrorSpawning: the encoder process could not be started; source
	// quarantined.
	ErrorSpawning
	// ErrorUnexpected: a panic inside the pipeline, recovered at the
	// pipeline boundary.
	ErrorUnexpected
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case SkippedDryRun:
		return "skipped (dry run)"
	case SkippedExists:
		return "skipped (exists)"
	case ErrorConverting:
		return "error converting"
	case ErrorDeletingSource:
		return "error deleting source"
	case ErrorSpawning:
		return "error spawning encoder"
	case ErrorUnexpected:
		return "unexpected error"
	default:
		return "unknown"
	}
}

// IsError reports whether the outcome is a failure class.
func (o Outcome) IsError() bool {
	switch o {
	case ErrorConverting, ErrorDeletingSource, ErrorSpawning, ErrorUnexpected:
		return true
	}
	return false
}

// IsSkip reports whether the outcome is a skip class.
func (o Outcome) IsSkip() bool {
	return o == SkippedDryRun || o == SkippedExists
}

// Result is the terminal record of one file's conversion. Byte counts are
// zero unless the outcome is Converted or ErrorDeletingSource.
type Result struct {
	Outcome     Outcome
	InputBytes  int64
	OutputBytes int64
}
