package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/langdetect"
)

// ErrNoFixer is returned when Options.NewFixer is nil.
var ErrNoFixer = errors.New("runner: no fixer factory")

// Runner orchestrates multi-file fixing.
type Runner struct{}

// New creates a Runner.
func New() *Runner {
	return &Runner{}
}

// Run discovers files under opts.Paths and fixes them concurrently.
// It returns outcomes in path order and aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Drops files the language gate rejects
//   - Processes files with one Fixer per worker
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.NewFixer == nil {
		return nil, ErrNoFixer
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts.NewFixer(), workCh, outCh, workDir, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	fixer *engine.Fixer,
	workCh <-chan string,
	outCh chan<- FileOutcome,
	workDir string,
	opts Options,
) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := processFile(ctx, fixer, path, workDir, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func processFile(ctx context.Context, fixer *engine.Fixer, path, workDir string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}
	// Vendor paths are matched relative to the working directory.
	classifyPath := path
	if r, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(r, "..") {
		classifyPath = filepath.ToSlash(r)
	}
	outcome.Verdict = langdetect.Classify(classifyPath, content)
	if outcome.Verdict != langdetect.Accept {
		return outcome
	}

	req := opts.Request
	req.FilePath = path
	if req.ProjectPath == "" && opts.AutoProject {
		req.ProjectPath = FindProject(path)
	}
	outcome.ProjectPath = req.ProjectPath

	outcome.Outcome, outcome.Error = fixer.Process(ctx, req, opts.Pipeline)
	return outcome
}
