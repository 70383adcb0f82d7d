// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldProject    = "project"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Run options.
	FieldFix      = "fix"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldFormat   = "format"
	FieldAnalyzer = "analyzer"
	FieldCompany  = "company"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesIgnored    = "files_ignored"
	FieldFilesModified   = "files_modified"
	FieldTotal           = "total"
	FieldFixed           = "fixed"

	// Violation fields.
	FieldRule    = "rule"
	FieldLine    = "line"
	FieldReason  = "reason"
	FieldVerdict = "verdict"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
