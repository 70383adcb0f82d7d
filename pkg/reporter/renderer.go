package reporter

import (
	"context"

	"github.com/yaklabco/stylefix/pkg/analysis"
)

// Renderer formats an analysis.Report for output.
// Renderers only handle presentation.
type Renderer interface {
	// Render writes the formatted report to the configured output.
	Render(ctx context.Context, report *analysis.Report) error
}
