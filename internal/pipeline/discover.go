package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/framefarm/webmvert/internal/config"
	"github.com/framefarm/webmvert/internal/convert"
)

// Logger is the subset of the logging interface the pipeline needs. Defined
// here (rather than importing the logging package concretely) so tests can
// substitute a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Discover walks root and returns a task for every regular file whose
// extension is not the target container's (case-insensitive). Symlinks and
// special files are excluded. An unreadable directory is reported as a
// warning and its subtree skipped; the scan never fails as a whole, so an
// empty or fully-converted tree yields an empty slice. WalkDir visits
// entries in lexical order, which keeps processing order deterministic.
func Discover(root string, container config.Container, log Logger) []convert.Task {
	targetExt := container.Ext()

	var tasks []convert.Task
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Cannot read %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), targetExt) {
			return nil
		}
		tasks = append(tasks, convert.Task{Path: path, Root: root})
		return nil
	})
	return tasks
}
