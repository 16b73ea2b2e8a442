package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/framefarm/webmvert/internal/config"
	"github.com/framefarm/webmvert/internal/convert"
)

// testLogger records log lines; implements Logger.
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) record(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *testLogger) Info(f string, a ...interface{})    { l.record("INFO", f, a...) }
func (l *testLogger) Success(f string, a ...interface{}) { l.record("SUCCESS", f, a...) }
func (l *testLogger) Warn(f string, a ...interface{})    { l.record("WARN", f, a...) }
func (l *testLogger) Error(f string, a ...interface{})   { l.record("ERROR", f, a...) }
func (l *testLogger) Debug(v bool, f string, a ...interface{}) {
	if v {
		l.record("DEBUG", f, a...)
	}
}

func (l *testLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.lines {
		if len(line) >= len(level) && line[:len(level)] == level {
			n++
		}
	}
	return n
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func relPaths(tasks []convert.Task) []string {
	var out []string
	for _, task := range tasks {
		out = append(out, task.RelPath())
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --- Discover tests ---

func TestDiscover_ExcludesTargetContainer(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.mp4")
	touch(t, dir, "b.mov")
	touch(t, dir, "c.webm")
	touch(t, dir, "d.WEBM")

	tasks := Discover(dir, config.ContainerWebM, &testLogger{})

	want := []string{"a.mp4", "b.mov"}
	got := relPaths(tasks)
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_RecursiveAndOrdered(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, filepath.Join("Show", "Season 02", "ep01.mkv"))
	touch(t, dir, filepath.Join("Show", "Season 01", "ep02.mkv"))
	touch(t, dir, filepath.Join("Show", "Season 01", "ep01.mkv"))

	tasks := Discover(dir, config.ContainerWebM, &testLogger{})

	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	// WalkDir yields lexical order.
	for i := 1; i < len(tasks); i++ {
		if tasks[i].Path < tasks[i-1].Path {
			t.Errorf("not ordered: %q before %q", tasks[i-1].Path, tasks[i].Path)
		}
	}
	for _, task := range tasks {
		if task.Root != dir {
			t.Errorf("task root = %q, want %q", task.Root, dir)
		}
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	tasks := Discover(dir, config.ContainerWebM, &testLogger{})
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestDiscover_FullyConvertedTree(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.webm")
	touch(t, dir, filepath.Join("sub", "b.webm"))

	tasks := Discover(dir, config.ContainerWebM, &testLogger{})
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0 for a fully-converted tree", len(tasks))
	}
}

func TestDiscover_ExcludesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := touch(t, dir, "real.mp4")
	if err := os.Symlink(real, filepath.Join(dir, "link.mp4")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tasks := Discover(dir, config.ContainerWebM, &testLogger{})
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1 (symlink excluded)", len(tasks))
	}
	if tasks[0].Path != real {
		t.Errorf("got %q, want %q", tasks[0].Path, real)
	}
}

func TestDiscover_UnreadableDirWarnsAndContinues(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; permission bits are not enforced")
	}
	dir := t.TempDir()
	touch(t, dir, filepath.Join("ok", "a.mp4"))
	locked := filepath.Join(dir, "locked")
	touch(t, dir, filepath.Join("locked", "hidden.mp4"))
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	log := &testLogger{}
	tasks := Discover(dir, config.ContainerWebM, log)

	want := []string{filepath.Join("ok", "a.mp4")}
	if !sliceEqual(relPaths(tasks), want) {
		t.Errorf("got %v, want %v", relPaths(tasks), want)
	}
	if log.count("WARN") == 0 {
		t.Error("expected a warning for the unreadable directory")
	}
}
