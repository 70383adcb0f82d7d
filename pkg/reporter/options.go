package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/stylefix/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

// Summary table orders.
const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowFixed lists fixed violations next to open ones in the text and
	// table formats. JSON and SARIF always include them.
	ShowFixed bool

	// Compact uses minified JSON and SARIF output.
	Compact bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// SortBy orders the per-rule and per-file views.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in SARIF output.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowSummary:  true,
		SummaryOrder: SummaryOrderRules,
		SortBy:       analysis.SortByCount,
		ToolVersion:  "dev",
	}
}
