package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/stylefix/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run totals as a single line.
// Example: "12 violations in 3 files, 9 fixed, 3 open, 2 files written".
func (s *Styles) FormatSummaryOneLine(t analysis.Totals) string {
	if t.Violations == 0 && t.FilesErrored == 0 {
		return s.Success.Render("No violations") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", t.Files, plural(t.Files, wordFile, wordFiles))) + "\n"
	}

	var parts []string
	if t.Violations > 0 {
		parts = append(parts, fmt.Sprintf("%d %s in %d %s",
			t.Violations, plural(t.Violations, "violation", "violations"),
			t.FilesWithViolations, plural(t.FilesWithViolations, wordFile, wordFiles)))
	}
	if t.Fixed > 0 {
		parts = append(parts, s.Fixed.Render(fmt.Sprintf("%d fixed", t.Fixed)))
	}
	if t.Remaining > 0 {
		parts = append(parts, s.Open.Render(fmt.Sprintf("%d open", t.Remaining)))
	}
	if t.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d %s written", t.FilesWritten, plural(t.FilesWritten, wordFile, wordFiles)))
	}
	if t.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed", t.FilesErrored, plural(t.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(t analysis.Totals) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files checked", t.Files, s.SummaryValue.Render)
	if t.FilesIgnored > 0 {
		row("Files ignored", t.FilesIgnored, s.Dim.Render)
	}
	if t.FilesChanged > 0 {
		row("Files changed", t.FilesChanged, s.SummaryValue.Render)
	}
	if t.FilesWritten > 0 {
		row("Files written", t.FilesWritten, s.Success.Render)
	}
	if t.FilesErrored > 0 {
		row("Files failed", t.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Violations", t.Violations, s.SummaryValue.Render)
	row("  Fixed", t.Fixed, s.Fixed.Render)
	row("  Open", t.Remaining, s.Open.Render)
	builder.WriteString("\n")

	switch {
	case t.HasErrors():
		builder.WriteString(s.Failure.Render("Some files could not be fixed"))
	case t.HasRemaining():
		builder.WriteString(s.Open.Render("Violations remain"))
	default:
		builder.WriteString(s.Success.Render("All violations fixed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
