package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/watch"
)

type recorder struct {
	mu      sync.Mutex
	handled []string
	removed []string
	batches int
}

func (r *recorder) handle(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, path)
	return nil
}

func (r *recorder) remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removed = append(r.removed, path)
}

func (r *recorder) batchDone([]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches++
}

func (r *recorder) snapshot() (handled, removed []string, batches int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.handled...), append([]string(nil), r.removed...), r.batches
}

func start(t *testing.T, opts watch.Options) (*watch.Watcher, *recorder) {
	t.Helper()

	rec := &recorder{}
	opts.Handle = rec.handle
	opts.Removed = rec.remove
	opts.BatchDone = rec.batchDone
	opts.Extensions = []string{".cs"}
	opts.Debounce = 20 * time.Millisecond

	w, err := watch.New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	return w, rec
}

func TestNew_RequiresHandler(t *testing.T) {
	t.Parallel()

	_, err := watch.New(watch.Options{Roots: []string{t.TempDir()}})
	require.ErrorIs(t, err, watch.ErrNoHandler)
}

func TestNew_SkipsDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"src", "bin", "obj", ".git"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	w, err := watch.New(watch.Options{
		Roots:    []string{root},
		SkipDirs: []string{"bin", "obj"},
		Handle:   func(context.Context, string) error { return nil },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{root, filepath.Join(root, "src")}, w.Dirs())
	require.NoError(t, w.Run(canceled()))
}

func canceled() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestRun_InitialBatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.cs")
	require.NoError(t, os.WriteFile(a, []byte("class A {}\n"), 0o644))

	_, rec := start(t, watch.Options{Roots: []string{root}, Initial: []string{a}})

	require.Eventually(t, func() bool {
		_, _, batches := rec.snapshot()
		return batches == 1
	}, 5*time.Second, 10*time.Millisecond)

	handled, _, _ := rec.snapshot()
	assert.Equal(t, []string{a}, handled)
}

func TestRun_HandlesChangedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, rec := start(t, watch.Options{Roots: []string{root}})

	a := filepath.Join(root, "A.cs")
	require.NoError(t, os.WriteFile(a, []byte("class A {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		handled, _, _ := rec.snapshot()
		return len(handled) > 0
	}, 5*time.Second, 10*time.Millisecond)

	handled, _, _ := rec.snapshot()
	for _, p := range handled {
		assert.Equal(t, a, p)
	}
}

func TestRun_WatchesNewDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, rec := start(t, watch.Options{Roots: []string{root}})

	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.Eventually(t, func() bool {
		return len(w.Dirs()) == 2
	}, 5*time.Second, 10*time.Millisecond)

	b := filepath.Join(sub, "B.cs")
	require.NoError(t, os.WriteFile(b, []byte("class B {}\n"), 0o644))

	require.Eventually(t, func() bool {
		handled, _, _ := rec.snapshot()
		return len(handled) > 0 && handled[len(handled)-1] == b
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRun_ReportsRemovedFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A.cs")
	require.NoError(t, os.WriteFile(a, []byte("class A {}\n"), 0o644))

	_, rec := start(t, watch.Options{Roots: []string{root}})
	require.NoError(t, os.Remove(a))

	require.Eventually(t, func() bool {
		_, removed, _ := rec.snapshot()
		return len(removed) == 1
	}, 5*time.Second, 10*time.Millisecond)

	handled, removed, _ := rec.snapshot()
	assert.Empty(t, handled)
	assert.Equal(t, []string{a}, removed)
}
