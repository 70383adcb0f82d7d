// Package watch re-analyzes C# files when they change on disk.
//
// Changes are debounced: a burst of events for the same files produces one
// batch once the tree has been quiet for the debounce interval. Batches are
// handled one at a time; the files of a batch are handled concurrently.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// DefaultDebounce is the quiet period before a batch is handled.
const DefaultDebounce = 200 * time.Millisecond

// ErrNoHandler is returned when Options.Handle is nil.
var ErrNoHandler = errors.New("watch: no handler")

// ErrWatcherClosed is returned when fsnotify closes its channels.
var ErrWatcherClosed = errors.New("watch: watcher closed")

// Options configures a Watcher.
type Options struct {
	// Roots are the directories watched recursively.
	Roots []string

	// Extensions are the file extensions handled, lowercase with a leading dot.
	Extensions []string

	// SkipDirs are directory names never watched.
	SkipDirs []string

	// Debounce is the quiet period before a batch runs. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	// Jobs bounds the files handled at once. Zero or less means one.
	Jobs int

	// Initial files are handled as the first batch, before any event.
	Initial []string

	// Handle is called for each changed file that still exists. Required.
	Handle func(ctx context.Context, path string) error

	// Removed is called for each handled file that was deleted or renamed
	// away. Optional.
	Removed func(path string)

	// BatchDone is called after each batch with the files it handled.
	// Optional.
	BatchDone func(paths []string)

	// OnError receives handler and watcher errors. Watching continues.
	// Optional.
	OnError func(err error)
}

// Watcher watches a set of directory trees.
type Watcher struct {
	opts    Options
	fsw     *fsnotify.Watcher
	batches chan []string
}

// New creates a Watcher and registers every directory under opts.Roots.
func New(opts Options) (*Watcher, error) {
	if opts.Handle == nil {
		return nil, ErrNoHandler
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{opts: opts, fsw: fsw, batches: make(chan []string)}
	for _, root := range opts.Roots {
		if err := w.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Dirs returns the watched directories, sorted.
func (w *Watcher) Dirs() []string {
	dirs := w.fsw.WatchList()
	slices.Sort(dirs)
	return dirs
}

// Run handles the initial files, then watches until ctx is done. It closes
// the underlying watcher on return and returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.loop(gctx) })
	g.Go(func() error { return w.process(gctx) })

	err := g.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// addTree watches root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(w.opts.SkipDirs, name)
}

func (w *Watcher) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(w.opts.Extensions, ext)
}

// loop collects events into debounced batches.
func (w *Watcher) loop(ctx context.Context) error {
	if len(w.opts.Initial) > 0 {
		if !w.send(ctx, slices.Clone(w.opts.Initial)) {
			return nil
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if w.collect(event, pending) {
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.report(fmt.Errorf("watcher: %w", err))

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			slices.Sort(batch)
			clear(pending)
			if !w.send(ctx, batch) {
				return nil
			}
		}
	}
}

// collect records a relevant event and reports whether it was one. New
// directories are watched as they appear.
func (w *Watcher) collect(event fsnotify.Event, pending map[string]struct{}) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(info.Name()) {
				if err := w.addTree(event.Name); err != nil {
					w.report(err)
				}
			}
			return false
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if !w.matches(event.Name) {
		return false
	}
	pending[event.Name] = struct{}{}
	return true
}

func (w *Watcher) send(ctx context.Context, batch []string) bool {
	select {
	case <-ctx.Done():
		return false
	case w.batches <- batch:
		return true
	}
}

// process handles batches one at a time.
func (w *Watcher) process(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case batch := <-w.batches:
			w.handle(ctx, batch)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, batch []string) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.opts.Jobs)

	for _, path := range batch {
		g.Go(func() error {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				if w.opts.Removed != nil {
					w.opts.Removed(path)
				}
				return nil
			}
			if err := w.opts.Handle(gctx, path); err != nil {
				w.report(fmt.Errorf("%s: %w", path, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	if w.opts.BatchDone != nil && ctx.Err() == nil {
		w.opts.BatchDone(batch)
	}
}

func (w *Watcher) report(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}
