package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/stylefix/internal/ui/pretty"
	"github.com/yaklabco/stylefix/pkg/analysis"
)

// TextRenderer writes violations grouped by file as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	byPath := groupByFile(report.Violations)

	for i := range report.ByFile {
		fa := &report.ByFile[i]
		entries := byPath[fa.Path]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(fa))
		for j := range entries {
			fmt.Fprint(r.bw, r.styles.FormatViolation(&entries[j]))
		}
		fmt.Fprintln(r.bw)
	}

	for i := range report.Errors {
		fmt.Fprint(r.bw, r.styles.FormatFileError(&report.Errors[i]))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Totals))
	}
	return nil
}

func groupByFile(entries []analysis.ViolationEntry) map[string][]analysis.ViolationEntry {
	out := make(map[string][]analysis.ViolationEntry)
	for _, e := range entries {
		out[e.FilePath] = append(out[e.FilePath], e)
	}
	return out
}
