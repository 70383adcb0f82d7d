// Package engine orchestrates one fix pass over a C# source file: it runs
// the analyzer, gates on compile errors, runs the rule drivers in order,
// emits the text with its copyright header and optionally arranges it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/arrange"
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/emit"
	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/store"
)

// State is the lifecycle state of a Fixer.
type State int

const (
	// NotRun means no fix pass has been run.
	NotRun State = iota

	// Ran means at least one fix pass has been run.
	Ran
)

// String returns the state name.
func (s State) String() string {
	if s == Ran {
		return "ran"
	}
	return "not-run"
}

// Options configures a Fixer.
type Options struct {
	// Analyzer reports the violations of a file. When nil, or when a request
	// has no project path, the pass runs without violations.
	Analyzer analyzer.Analyzer

	// Formatter arranges the emitted text. Nil skips the step.
	Formatter arrange.Formatter

	// Store receives the violation summaries of each analyzed file.
	// Nil means store.Default().
	Store *store.Store

	// Modifier is the access modifier added for SA1400. Empty means
	// drivers.DefaultModifier.
	Modifier string

	// Enabled reports whether a rule's fixes may run. Nil enables the
	// rules that are enabled by default.
	Enabled func(rules.ID) bool
}

// Request describes one fix pass.
type Request struct {
	// ProjectPath is passed to the analyzer. Empty skips analysis.
	ProjectPath string

	// FilePath is the file to fix.
	FilePath string

	// Company and Author fill the copyright header. No header is added when
	// Company is empty.
	Company string
	Author  string

	// ForceFix runs the drivers even when the file does not compile.
	ForceFix bool
}

// Result is the outcome of one fix pass.
type Result struct {
	// Path is the requested file path.
	Path string

	// Missing is true when the file does not exist. No other field is set.
	Missing bool

	// Text is the fixed text.
	Text string

	// Changed reports whether Text differs from the input.
	Changed bool

	// Findings are the analyzer findings the pass started from.
	Findings []analyzer.Finding

	// Violations are the attached violations after the pass, in line order,
	// with Resolved set on the ones a driver fixed.
	Violations []document.Violation

	// Renames maps identifiers to their required names, for a rename tool.
	Renames map[string]string

	// Skipped lists violations that were not fixed, with the reason.
	Skipped []drivers.Skip

	// FormatError is set when the arrange step failed. Text is then the
	// emitted text before arranging.
	FormatError error

	// Total and Corrected count the attached violations.
	Total     int
	Corrected int
}

// Remaining returns the number of violations left unresolved.
func (r *Result) Remaining() int {
	return r.Total - r.Corrected
}

// Fixer runs fix passes. A Fixer is not safe for concurrent use; use one per
// goroutine. The Store may be shared.
type Fixer struct {
	opts    Options
	state   State
	doc     *document.Document
	renames map[string]string
}

// New creates a Fixer.
func New(opts Options) *Fixer {
	if opts.Store == nil {
		opts.Store = store.Default()
	}
	if opts.Modifier == "" {
		opts.Modifier = drivers.DefaultModifier
	}
	if opts.Enabled == nil {
		opts.Enabled = defaultEnabled
	}
	return &Fixer{opts: opts}
}

func defaultEnabled(id rules.ID) bool {
	info, ok := rules.DefaultRegistry.GetByID(id)
	return !ok || info.DefaultEnabled
}

// State returns the lifecycle state.
func (f *Fixer) State() State {
	return f.state
}

// Fix reads req.FilePath and runs a fix pass over it. A missing file yields
// a Result with Missing set and no error.
func (f *Fixer) Fix(ctx context.Context, req Request) (*Result, error) {
	src, err := fsutil.ReadSource(ctx, req.FilePath)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			return &Result{Path: req.FilePath, Missing: true}, nil
		}
		return nil, err
	}
	return f.FixContent(ctx, req, src.Text)
}

// FixContent runs a fix pass over text. The analyzer, when configured, still
// analyzes req.FilePath.
//
// If the analyzer reports a compile error and req.ForceFix is false, it
// returns a *CompileError and no result.
func (f *Fixer) FixContent(ctx context.Context, req Request, text string) (*Result, error) {
	f.state = Ran
	f.doc = document.Build(text)
	f.doc.SetFilter(f.opts.Enabled)
	f.renames = nil

	res := &Result{Path: req.FilePath}

	findings, err := f.analyze(ctx, req.ProjectPath, req.FilePath)
	if err != nil {
		return nil, err
	}
	res.Findings = findings

	for _, fd := range findings {
		v := document.Violation{Rule: fd.Rule, Line: fd.Line, Message: fd.Message}
		if err := f.doc.Attach(v); err != nil {
			res.Skipped = append(res.Skipped, drivers.Skip{Rule: fd.Rule, Line: fd.Line, Reason: err.Error()})
		}
	}

	if line, found := drivers.CheckErrors(f.doc); found && !req.ForceFix {
		return nil, &CompileError{Path: req.FilePath, Line: line}
	}

	dctx := drivers.NewContext(f.doc)
	dctx.Modifier = f.opts.Modifier
	for _, d := range drivers.Pipeline() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fix cancelled: %w", err)
		}
		d.Fix(dctx)
	}
	f.renames = dctx.Renames
	res.Renames = dctx.Renames
	res.Skipped = append(res.Skipped, dctx.Skipped...)

	header := emit.Header{File: filepath.Base(req.FilePath), Company: req.Company, Author: req.Author}
	if !f.opts.Enabled(rules.FileHeader) {
		header = emit.Header{}
	}
	res.Text = emit.Emit(f.doc, header)

	if f.opts.Formatter != nil {
		arranged, err := f.opts.Formatter.Arrange(ctx, res.Text)
		if err != nil {
			res.FormatError = err
		} else {
			res.Text = arranged
		}
	}

	for _, v := range f.doc.Violations() {
		res.Violations = append(res.Violations, *v)
	}
	res.Changed = res.Text != text
	res.Total, res.Corrected = f.doc.Counts()
	return res, nil
}

// analyze runs the analyzer and replaces the store entry for filePath.
func (f *Fixer) analyze(ctx context.Context, projectPath, filePath string) ([]analyzer.Finding, error) {
	if projectPath == "" || f.opts.Analyzer == nil {
		return nil, nil
	}

	findings, err := f.opts.Analyzer.Analyze(ctx, projectPath, filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyzer, err)
	}

	summaries := make([]store.Summary, 0, len(findings))
	for _, fd := range findings {
		summaries = append(summaries, store.Summary{Line: fd.Line, Message: fd.Summary()})
	}
	f.opts.Store.Replace(filePath, summaries)

	return findings, nil
}

// Reanalyze runs the analyzer for filePath and replaces its store entry. It
// never starts a fix pass.
func (f *Fixer) Reanalyze(ctx context.Context, projectPath, filePath string) ([]store.Summary, error) {
	if _, err := f.analyze(ctx, projectPath, filePath); err != nil {
		return nil, err
	}
	return f.opts.Store.Get(filePath), nil
}

// CalculateViolations counts the violations of the last pass. Both counts
// are zero before the first pass.
func (f *Fixer) CalculateViolations() (total, corrected int) {
	if f.doc == nil {
		return 0, 0
	}
	return f.doc.Counts()
}

// ViolationsFor returns the stored summaries for path.
func (f *Fixer) ViolationsFor(path string) []store.Summary {
	return f.opts.Store.Get(path)
}

// Renames returns the rename map of the last pass.
func (f *Fixer) Renames() map[string]string {
	return f.renames
}
