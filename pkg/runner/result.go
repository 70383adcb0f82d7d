package runner

import (
	"errors"

	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/langdetect"
)

// FileOutcome is the result of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// ProjectPath is the project the analyzer was run against, if any.
	ProjectPath string

	// Verdict is the language gate's decision. Files that are not accepted
	// have no Outcome.
	Verdict langdetect.Verdict

	// Outcome is the pipeline result. Nil when Error is set or the file was
	// not accepted.
	Outcome *engine.Outcome

	// Error is set if the file could not be processed.
	Error error
}

// Ignored reports whether the language gate rejected the file.
func (f FileOutcome) Ignored() bool {
	return f.Error == nil && f.Verdict != langdetect.Accept
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesIgnored counts files rejected by the language gate.
	FilesIgnored int

	// FilesSkipped counts files not written because they changed on disk.
	FilesSkipped int

	FilesErrored int

	// CompileErrors counts files rejected by the compile-error gate. They
	// are included in FilesErrored.
	CompileErrors int

	FilesChanged       int
	FilesModified      int
	FilesWithRemaining int

	ViolationsTotal     int
	ViolationsCorrected int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasRemaining reports whether any violation was left unresolved.
func (r *Result) HasRemaining() bool {
	if r == nil {
		return false
	}
	return r.Stats.ViolationsTotal > r.Stats.ViolationsCorrected
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		if errors.Is(outcome.Error, engine.ErrCompileError) {
			r.Stats.CompileErrors++
		}
		return
	}
	if outcome.Ignored() {
		r.Stats.FilesIgnored++
		return
	}
	if outcome.Outcome == nil || outcome.Outcome.Missing {
		return
	}

	out := outcome.Outcome
	r.Stats.FilesProcessed++
	if out.Skipped {
		r.Stats.FilesSkipped++
	}
	if out.Changed {
		r.Stats.FilesChanged++
	}
	if out.Written {
		r.Stats.FilesModified++
	}
	if out.Remaining() > 0 {
		r.Stats.FilesWithRemaining++
	}
	r.Stats.ViolationsTotal += out.Total
	r.Stats.ViolationsCorrected += out.Corrected
}
