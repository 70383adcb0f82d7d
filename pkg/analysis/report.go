package analysis

import "time"

// Report contains pre-computed views of a fix run.
// Computed once by Analyze, used by all reporters.
type Report struct {
	// Violations is the flat list for detailed output.
	Violations []ViolationEntry `json:"violations,omitempty"`

	// Errors lists the files that could not be fixed.
	Errors []FileError `json:"errors,omitempty"`

	// ByFile groups violations by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByRule groups violations by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the report was built.
	Timestamp time.Time `json:"timestamp"`
}

// ViolationEntry is one violation in the report.
type ViolationEntry struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName,omitempty"`
	Category string `json:"category,omitempty"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Fixed    bool   `json:"fixed"`

	// SkipReason says why an open violation was not fixed, when known.
	SkipReason string `json:"skipReason,omitempty"`
}

// FileError is a file the run could not fix.
type FileError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`

	// CompileError is set when the analyzer reported the file does not
	// compile.
	CompileError bool `json:"compileError,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files               int `json:"filesChecked"`
	FilesIgnored        int `json:"filesIgnored"`
	FilesChanged        int `json:"filesChanged"`
	FilesWritten        int `json:"filesWritten"`
	FilesWithViolations int `json:"filesWithViolations"`
	FilesErrored        int `json:"filesErrored"`
	Violations          int `json:"totalViolations"`
	Fixed               int `json:"fixed"`
	Remaining           int `json:"remaining"`
}

// HasRemaining reports whether any violation is still open.
func (t Totals) HasRemaining() bool {
	return t.Remaining > 0
}

// HasErrors reports whether any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path       string   `json:"path"`
	Violations int      `json:"violations"`
	Fixed      int      `json:"fixed"`
	Remaining  int      `json:"remaining"`
	Changed    bool     `json:"changed"`
	Written    bool     `json:"written"`
	Rules      []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID     string   `json:"ruleId"`
	RuleName   string   `json:"ruleName,omitempty"`
	Category   string   `json:"category,omitempty"`
	Violations int      `json:"violations"`
	Fixed      int      `json:"fixed"`
	Remaining  int      `json:"remaining"`
	Files      []string `json:"files,omitempty"`
}
