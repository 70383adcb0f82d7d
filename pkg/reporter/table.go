package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/stylefix/internal/ui/pretty"
	"github.com/yaklabco/stylefix/pkg/analysis"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableRenderer writes violations as one styled table.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableRenderer creates a new table renderer.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, terminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprint(r.bw, r.formatter.FormatTable(report.Violations))

	for i := range report.Errors {
		fmt.Fprint(r.bw, r.styles.FormatFileError(&report.Errors[i]))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Totals))
		if report.Totals.HasRemaining() && report.Totals.FilesWritten == 0 && report.Totals.Fixed > 0 {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("Run with --fix to write the fixes"))
		}
	}
	return nil
}

// terminalWidth returns the width of the terminal behind writer.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
