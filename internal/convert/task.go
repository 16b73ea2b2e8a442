package convert

import (
	"path/filepath"
	"strings"
)

// Task is one discovered input file awaiting conversion. Immutable; created
// by discovery and consumed exactly once by the scheduler.
type Task struct {
	// Path is the absolute source file path.
	Path string
	// Root is the conversion root directory, used to compute quarantine
	// destinations and display paths.
	Root string
}

// RelPath returns the task's path relative to the conversion root, for
// display and for mirroring the tree under the quarantine directory. Falls
// back to the basename if the path is not under the root.
func (t Task) RelPath() string {
	rel, err := filepath.Rel(t.Root, t.Path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return filepath.Base(t.Path)
	}
	return rel
}
