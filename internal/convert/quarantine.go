package convert

import (
	"os"
	"path/filepath"
)

// failedSuffix decorates the conversion root's directory name to form the
// quarantine sibling (e.g. /media/videos -> /media/videos-failed).
const failedSuffix = "-failed"

// QuarantineDir returns the quarantine sibling directory for a conversion
// root.
func QuarantineDir(root string) string {
	clean := filepath.Clean(root)
	return filepath.Join(filepath.Dir(clean), filepath.Base(clean)+failedSuffix)
}

// QuarantinePath returns where a task's source would be moved, preserving
// its path relative to the conversion root.
func QuarantinePath(task Task) string {
	return filepath.Join(QuarantineDir(task.Root), task.RelPath())
}

// Quarantine moves a task's source file into the quarantine sibling
// directory, creating destination directories on demand. A source that no
// longer exists is informational (an earlier step already removed it), and a
// failed move is logged but never escalated: the batch continues either way.
func (c *Converter) Quarantine(task Task) {
	if _, err := os.Stat(task.Path); os.IsNotExist(err) {
		c.log.Debug(c.cfg.Verbose, "Source already gone, nothing to quarantine: %s", task.RelPath())
		return
	}

	dest := QuarantinePath(task)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		c.log.Warn("Cannot create quarantine directory for %s: %v", task.RelPath(), err)
		return
	}
	if err := os.Rename(task.Path, dest); err != nil {
		c.log.Warn("Cannot quarantine %s: %v", task.RelPath(), err)
		return
	}
	c.log.Warn("Quarantined: %s", dest)
}
