package analysis

// SortField specifies how to sort the ByFile and ByRule views.
type SortField string

const (
	// SortByCount sorts by violation count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts by rule id or path.
	SortByAlpha SortField = "alpha"
	// SortByRemaining sorts by open violations, most first.
	SortByRemaining SortField = "remaining"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByRemaining:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeViolations includes the flat violation list.
	IncludeViolations bool

	// IncludeFixed keeps fixed violations in the flat list. Otherwise only
	// open violations are listed.
	IncludeFixed bool

	// IncludeByFile includes the per-file view.
	IncludeByFile bool

	// IncludeByRule includes the per-rule view.
	IncludeByRule bool

	// SortBy specifies how to sort ByFile and ByRule.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
	}
}
