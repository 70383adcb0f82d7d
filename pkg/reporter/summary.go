package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/stylefix/internal/ui/pretty"
	"github.com/yaklabco/stylefix/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90
	ruleColWidth      = 42
	fileColWidth      = 60
	numColWidth       = 9
	maxRuleNameLength = 40
	maxFilePathLength = 58
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated rule and file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Violations == 0 && !report.Totals.HasErrors() {
		fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(report.Totals))
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		r.renderRuleTable(report.ByRule)
	} else {
		r.renderRuleTable(report.ByRule)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprint(r.out, r.styles.FormatSummary(report.Totals))
	return nil
}

func (r *SummaryRenderer) header(first string, width int) {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight(first, width)),
		r.styles.TableHeader.Render(padLeft("Total", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixed", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Open", numColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) row(name string, width, total, fixed, open int) {
	padded := padRight(name, width)
	if open > 0 {
		padded = r.styles.TableOpenRow.Render(padded)
	} else {
		padded = r.styles.TableFixedRow.Render(padded)
	}
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		padded,
		padLeft(strconv.Itoa(total), numColWidth),
		padLeft(strconv.Itoa(fixed), numColWidth),
		padLeft(strconv.Itoa(open), numColWidth),
	)
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules"))
	r.header("Rule", ruleColWidth)
	for _, rule := range rules {
		name := rule.RuleID
		if rule.RuleName != "" {
			name += " " + rule.RuleName
		}
		r.row(pretty.Truncate(name, maxRuleNameLength), ruleColWidth, rule.Violations, rule.Fixed, rule.Remaining)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	r.header("File", fileColWidth)
	for _, file := range files {
		r.row(pretty.TruncatePath(file.Path, maxFilePathLength), fileColWidth, file.Violations, file.Fixed, file.Remaining)
	}
	fmt.Fprintln(r.out)
}
