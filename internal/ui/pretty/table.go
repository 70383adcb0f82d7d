package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/stylefix/pkg/analysis"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LINE, RULE, MESSAGE, STATUS
	statusWidth      = 6
	minFileWidth     = 20
	minLineWidth     = 4
	minMessageWidth  = 30
	ruleWidth        = 6
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableFormatter formats violations as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	file    int
	line    int
	message int
}

// FormatTable formats violations grouped by file, in the order given.
func (t *TableFormatter) FormatTable(violations []analysis.ViolationEntry) string {
	if len(violations) == 0 {
		return ""
	}

	widths := t.columnWidths(violations)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.separator(widths, heavySeparator) + "\n")

	for i := range violations {
		if i > 0 && violations[i].FilePath != violations[i-1].FilePath {
			builder.WriteString(t.separator(widths, lightSeparator) + "\n")
		}
		builder.WriteString(t.formatRow(&violations[i], widths) + "\n")
	}

	builder.WriteString(t.separator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")
	return builder.String()
}

func (t *TableFormatter) columnWidths(violations []analysis.ViolationEntry) columnWidths {
	widths := columnWidths{file: minFileWidth, line: minLineWidth, message: minMessageWidth}
	for _, v := range violations {
		widths.file = max(widths.file, len(v.FilePath))
		widths.line = max(widths.line, len(strconv.Itoa(v.Line)))
		widths.message = max(widths.message, len(v.Message))
	}

	// Shrink the message column first, then the file column.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.message = max(minMessageWidth, widths.message-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.file = max(minFileWidth, widths.file-excess)
	}
	return widths
}

func (t *TableFormatter) totalWidth(w columnWidths) int {
	return w.file + w.line + w.message + ruleWidth + statusWidth + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(w columnWidths) string {
	return t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		w.file, "FILE",
		w.line, "LINE",
		ruleWidth, "RULE",
		w.message, "MESSAGE",
		statusWidth, "STATUS",
	))
}

func (t *TableFormatter) separator(w columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(w)))
}

func (t *TableFormatter) formatRow(v *analysis.ViolationEntry, w columnWidths) string {
	status, style := "open", t.styles.TableOpenRow
	if v.Fixed {
		status, style = "fixed", t.styles.TableFixedRow
	}

	return style.Render(fmt.Sprintf(" %-*s  %*d  %-*s  %-*s  %-*s",
		w.file, TruncatePath(v.FilePath, w.file),
		w.line, v.Line,
		ruleWidth, v.RuleID,
		w.message, Truncate(v.Message, w.message),
		statusWidth, status,
	))
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: open = not fixed | fixed = resolved in this run")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = not fixed  %s = resolved in this run",
		t.styles.TableOpenRow.Render("open"), t.styles.TableFixedRow.Render("fixed")))
}

// Truncate shortens str to maxLen, ending in "..." when cut.
func Truncate(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// TruncatePath shortens path to maxLen, keeping the file name end.
func TruncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
