// Package reporter writes the result of a fix run in one of several formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/stylefix/pkg/analysis"
	"github.com/yaklabco/stylefix/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes fix results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of open violations and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Remaining, nil
}

func newRendererFacade(renderer Renderer, opts Options, includeFixed bool, sortBy analysis.SortField) *reporterFacade {
	if sortBy == "" {
		sortBy = analysis.SortByCount
	}
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeViolations: true,
			IncludeFixed:      includeFixed,
			IncludeByFile:     true,
			IncludeByRule:     true,
			SortBy:            sortBy,
			SortDesc:          true,
			WorkingDir:        opts.WorkingDir,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return newRendererFacade(NewTextRenderer(opts), opts, opts.ShowFixed, analysis.SortByAlpha), nil
	case FormatTable:
		return newRendererFacade(NewTableRenderer(opts), opts, opts.ShowFixed, analysis.SortByAlpha), nil
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, true, opts.SortBy), nil
	case FormatSARIF:
		return newRendererFacade(NewSARIFRenderer(opts), opts, true, analysis.SortByAlpha), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts, false, opts.SortBy), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
