package configloader

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// ValidationError is one invalid configuration field.
type ValidationError struct {
	// Field is the key path, e.g. "analyzer.format" or "ignore[2]".
	Field string

	// Value is the rejected value, if any.
	Value any

	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult collects the problems found by Validate. Errors stop
// loading; warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins the errors, or returns nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	outputFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON,
		config.FormatSARIF, config.FormatDiff, config.FormatSummary,
	}
	backupModes = []string{string(fsutil.BackupModeSidecar), string(fsutil.BackupModeNone)}

	// accessModifiers are the modifiers the SA1400 fix may add.
	accessModifiers = []string{
		"private", "internal", "protected", "public",
		"protected internal", "private protected",
	}
)

// Validate checks cfg after all layers are merged.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !slices.Contains(outputFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, table, json, sarif, diff, summary", cfg.Format)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !slices.Contains(backupModes, cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: %s",
			cfg.Backups.Mode, strings.Join(backupModes, ", "))
	}
	if cfg.DefaultModifier != "" && !slices.Contains(accessModifiers, cfg.DefaultModifier) {
		result.fail("default_modifier", cfg.DefaultModifier, "invalid access modifier %q", cfg.DefaultModifier)
	}
	if _, err := analyzer.ParseFormat(cfg.Analyzer.Format); err != nil {
		result.fail("analyzer.format", cfg.Analyzer.Format, "%v", err)
	}
	if _, err := cfg.AnalyzerTimeout(); err != nil {
		result.fail("analyzer.timeout", cfg.Analyzer.Timeout, "invalid duration")
	}
	if _, err := cfg.ArrangeTimeout(); err != nil {
		result.fail("arrange.timeout", cfg.Arrange.Timeout, "invalid duration")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if cfg.Arrange.Command != "" && cfg.Analyzer.Command == "" && cfg.Project == "" {
		result.warn("analyzer.command", nil, "no analyzer configured; files are only rewritten by the arrange command")
	}

	unknownRule := func(field, key string) {
		if _, ok := rules.DefaultRegistry.Get(key); !ok {
			result.warn(field, key, "unknown rule %q; it will be ignored", key)
		}
	}
	for _, key := range sortedKeys(cfg.Rules) {
		unknownRule("rules."+key, key)
	}
	for _, key := range cfg.EnableRules {
		unknownRule("enable_rules", key)
	}
	for _, key := range cfg.DisableRules {
		unknownRule("disable_rules", key)
	}

	return result
}
