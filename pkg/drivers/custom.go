package drivers

import (
	"strings"

	"github.com/yaklabco/stylefix/pkg/decl"
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// CustomRules splices required wording into summary text for the house
// rules reported by custom analyzer plugins.
type CustomRules struct{}

// Category implements Driver.
func (CustomRules) Category() rules.Category { return rules.CategoryCustomRules }

// Fix implements Driver.
func (CustomRules) Fix(ctx *Context) {
	applyAll(ctx, []ruleFix{
		{rules.SummaryPrefix, spliceSummary},
		{rules.SummaryFragment, spliceSummary},
	})
}

const docPrefix = "/// "

// spliceSummary inserts the fragment named in the message, the second
// colon-delimited token, at the start of the first summary text line.
func spliceSummary(ctx *Context, line *document.Line, v *document.Violation) error {
	fragment := summaryFragment(v.Message)
	if fragment == "" {
		return mismatch("no fragment in %q", v.Message)
	}

	summary := findSummaryTag(ctx, line)
	if summary == nil {
		return mismatch("no summary above line")
	}
	target := ctx.Doc.Next(summary)
	if target == nil {
		return mismatch("summary has no text line")
	}

	idx := strings.Index(target.Text, docPrefix)
	if idx < 0 {
		return mismatch("summary text line is not a doc comment")
	}
	at := idx + len(docPrefix)
	rest := target.Text[at:]
	if strings.HasPrefix(rest, fragment) {
		return mismatch("fragment already present")
	}

	if len(rest) > 2 {
		fragment += " "
	}
	target.Text = target.Text[:at] + fragment + rest
	return nil
}

// summaryFragment returns the second colon-delimited token of msg with
// surrounding spaces and one pair of quotes removed.
func summaryFragment(msg string) string {
	parts := strings.Split(msg, ":")
	if len(parts) < 2 {
		return ""
	}

	fragment := strings.TrimSpace(parts[1])
	if len(fragment) >= 2 {
		first, last := fragment[0], fragment[len(fragment)-1]
		if (first == '\'' || first == '"') && first == last {
			fragment = fragment[1 : len(fragment)-1]
		}
	}
	return fragment
}

// findSummaryTag scans upward from line through its header for the line
// holding the opening summary tag.
func findSummaryTag(ctx *Context, line *document.Line) *document.Line {
	for cur := ctx.Doc.Prev(line); cur != nil; cur = ctx.Doc.Prev(cur) {
		if strings.Contains(cur.Text, "<summary>") {
			return cur
		}
		if !decl.IsDocComment(cur.Text) && !decl.IsAttribute(cur.Text) {
			return nil
		}
	}
	return nil
}
