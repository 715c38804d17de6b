package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, path)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within 3s")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.csv")
	writeFile(t, target, "a,b\n")

	rec := &recorder{}
	w, err := New(target, rec.record, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() returned error: %v", err)
	}

	for i := 0; i < 5; i++ {
		writeFile(t, target, "a,b\n1,2\n")
	}

	waitFor(t, func() bool { return rec.count() >= 1 })
	time.Sleep(300 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("onChange called %d times for one burst, want 1", got)
	}
	if rec.calls[0] != w.Path() {
		t.Errorf("onChange path = %q, want %q", rec.calls[0], w.Path())
	}
	if stats := w.Stats(); stats.Triggers != 1 || stats.Events < 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "report.pdf")
	writeFile(t, target, "%PDF")

	rec := &recorder{}
	w, err := New(target, rec.record, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, "other.pdf"), "%PDF")
	time.Sleep(300 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("onChange called %d times for an unrelated file", got)
	}
}

func TestWatcher_ContextCancelStops(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	writeFile(t, target, "%PDF")

	w, err := New(target, (&recorder{}).record)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	w.Stop()
	w.Stop()
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing", "doc.pdf"), (&recorder{}).record)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); err == nil {
		t.Error("expected error watching a missing directory")
	}
}
