// Package drivers implements the rule drivers that rewrite a document to
// resolve reported violations.
//
// Every driver follows the same contract: it asks the document whether a line
// violates a rule (which claims the violation), attempts the rewrite, and
// reopens the violation if the line does not have the shape the rewrite
// expects. A failed extraction never touches other lines or rules.
package drivers

import (
	"errors"
	"fmt"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// ErrExtractionMismatch indicates a line does not have the shape a fix expects.
var ErrExtractionMismatch = errors.New("extraction mismatch")

// DefaultModifier is the access modifier added by the Modifiers driver when
// none is configured.
const DefaultModifier = "private"

// Skip records a fix that was claimed but could not be applied.
type Skip struct {
	// Rule is the rule whose fix was skipped.
	Rule rules.ID

	// Line is the 1-based line number reported for the violation.
	Line int

	// Reason describes why the line did not match.
	Reason string
}

// Context carries the state shared by the drivers during one fix pass.
type Context struct {
	// Doc is the document being fixed.
	Doc *document.Document

	// Renames collects identifier renames for an external rename tool.
	// The first entry recorded for a name wins.
	Renames map[string]string

	// Modifier is the access modifier inserted for SA1400.
	Modifier string

	// Skipped lists fixes that were claimed and then reopened.
	Skipped []Skip
}

// NewContext creates a driver context for doc.
func NewContext(doc *document.Document) *Context {
	return &Context{
		Doc:      doc,
		Renames:  make(map[string]string),
		Modifier: DefaultModifier,
	}
}

// Driver resolves the violations of one rule category.
type Driver interface {
	// Category returns the category this driver handles.
	Category() rules.Category

	// Fix rewrites ctx.Doc in place.
	Fix(ctx *Context)
}

// Pipeline returns the drivers in execution order. CheckErrors is not part of
// the pipeline; it gates it.
func Pipeline() []Driver {
	return []Driver{
		Renaming{},
		Spacing{},
		Readability{},
		BlankLine{},
		Documentation{},
		CustomRules{},
		Using{},
		Modifiers{},
	}
}

// lineFix rewrites a single claimed line. v is the first violation of the
// rule on that line.
type lineFix func(ctx *Context, line *document.Line, v *document.Violation) error

// ruleFix binds a rule to its fix.
type ruleFix struct {
	rule rules.ID
	fix  lineFix
}

// applyAll runs each fix in order over a snapshot of the document.
func applyAll(ctx *Context, fixes []ruleFix) {
	for _, rf := range fixes {
		apply(ctx, rf.rule, rf.fix)
	}
}

// apply runs fix on every line that violates rule. Lines inserted by the fix
// are not revisited.
func apply(ctx *Context, rule rules.ID, fix lineFix) {
	for _, line := range ctx.Doc.Lines() {
		if !ctx.Doc.IsViolated(line, rule) {
			continue
		}

		v := ctx.Doc.Violation(line, rule)
		if err := fix(ctx, line, v); err != nil {
			ctx.skip(line, err, rule)
		}
	}
}

// claim checks every rule in ids against line without short-circuiting and
// returns the ones it claimed.
func claim(ctx *Context, line *document.Line, ids ...rules.ID) []rules.ID {
	var claimed []rules.ID
	for _, id := range ids {
		if ctx.Doc.IsViolated(line, id) {
			claimed = append(claimed, id)
		}
	}
	return claimed
}

// skip reopens the violations of ids on line and records why.
func (ctx *Context) skip(line *document.Line, err error, ids ...rules.ID) {
	for _, id := range ids {
		ctx.Doc.Reopen(line, id)

		lineNo := 0
		if v := ctx.Doc.Violation(line, id); v != nil {
			lineNo = v.Line
		}
		ctx.Skipped = append(ctx.Skipped, Skip{Rule: id, Line: lineNo, Reason: err.Error()})
	}
}

// mismatch builds an ErrExtractionMismatch with a reason.
func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrExtractionMismatch, fmt.Sprintf(format, args...))
}
