package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/textdiff"
)

// PipelineOptions controls how a fixed file is written.
type PipelineOptions struct {
	// Write enables writing the fixed text back to disk.
	Write bool

	// DryRun computes a diff instead of writing.
	DryRun bool

	// Backup configures sidecar backups.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing instead of only
	// comparing mod time and size.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns options that report without writing.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Outcome is the result of processing one file through the safety pipeline.
type Outcome struct {
	*Result

	// Diff is set in dry-run mode when the text changed.
	Diff *textdiff.Diff

	// Skipped is true when the file was not written, see SkipReason.
	Skipped    bool
	SkipReason string

	// BackupCreated and Written report what happened on disk.
	BackupCreated bool
	Written       bool
}

// Status returns a one-word summary of the outcome.
func (o *Outcome) Status() string {
	switch {
	case o.Missing:
		return "missing"
	case o.Skipped:
		return "skipped"
	case o.Written:
		return "fixed"
	case o.Changed:
		return "changes pending"
	case o.Remaining() > 0:
		return "violations remain"
	default:
		return "ok"
	}
}

// Process reads req.FilePath, runs a fix pass and, when opts ask for it,
// writes the result back.
//
// Steps:
//  1. Read the source, keeping its byte order mark.
//  2. Run the fix pass.
//  3. In dry-run mode, compute the diff and stop.
//  4. Skip the write if the file changed on disk since step 1.
//  5. Create a backup when enabled.
//  6. Write atomically.
func (f *Fixer) Process(ctx context.Context, req Request, opts PipelineOptions) (*Outcome, error) {
	src, err := fsutil.ReadSource(ctx, req.FilePath)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return &Outcome{Result: &Result{Path: req.FilePath, Missing: true}}, nil
		}
		return nil, err
	}

	res, err := f.FixContent(ctx, req, src.Text)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Result: res}

	if !res.Changed {
		return out, nil
	}
	if opts.DryRun {
		out.Diff = textdiff.Compute(req.FilePath, src.Text, res.Text)
		return out, nil
	}
	if !opts.Write {
		return out, nil
	}

	modified, err := fsutil.Changed(ctx, src.Info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		out.Skipped = true
		out.SkipReason = "file modified during processing"
		return out, nil
	}

	out.BackupCreated, err = fsutil.CreateBackup(ctx, req.FilePath, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}

	out.Written, err = fsutil.WriteSource(ctx, src, res.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return out, nil
}
