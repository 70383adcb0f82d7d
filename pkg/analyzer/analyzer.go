// Package analyzer adapts the output of an external style analyzer into
// findings the fix engine can attach to a document.
package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/yaklabco/stylefix/pkg/rules"
)

// Sentinel errors for analyzer operations.
var (
	// ErrUnknownFormat indicates an output format with no parser.
	ErrUnknownFormat = errors.New("unknown analyzer output format")

	// ErrNoCommand indicates a Command with no executable configured.
	ErrNoCommand = errors.New("analyzer command not configured")

	// ErrMalformedOutput indicates analyzer output that could not be parsed.
	ErrMalformedOutput = errors.New("malformed analyzer output")
)

// Finding is one violation reported by the analyzer.
type Finding struct {
	// Rule is the reported check id, e.g. SA1600.
	Rule rules.ID

	// Source is the file name the analyzer reported, if any.
	Source string

	// Line is the 1-based line number.
	Line int

	// Message is the analyzer's description.
	Message string
}

// Summary returns the "RULE: message" form shown in violation listings.
func (f Finding) Summary() string {
	return string(f.Rule) + ": " + f.Message
}

// Analyzer produces findings for one file of a project.
type Analyzer interface {
	// Analyze runs the analyzer against filePath within projectPath.
	Analyze(ctx context.Context, projectPath, filePath string) ([]Finding, error)
}

// Static is an Analyzer that returns fixed findings, keyed by file path.
// An empty key matches every file.
type Static map[string][]Finding

// Analyze implements Analyzer.
func (s Static) Analyze(_ context.Context, _, filePath string) ([]Finding, error) {
	if findings, ok := s[filePath]; ok {
		return findings, nil
	}
	return forFile(s[""], filePath), nil
}

// forFile keeps the findings whose source names filePath. Findings without a
// source are kept.
func forFile(findings []Finding, filePath string) []Finding {
	if filePath == "" {
		return findings
	}

	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.Source == "" || sameFile(f.Source, filePath) {
			out = append(out, f)
		}
	}
	return out
}

// sameFile compares a reported source with a path, accepting a bare file
// name or a path suffix. Windows separators are normalized.
func sameFile(source, path string) bool {
	src := strings.ReplaceAll(source, `\`, "/")
	src = strings.TrimPrefix(src, "file://")
	p := filepath.ToSlash(path)

	if src == p {
		return true
	}
	if !strings.Contains(src, "/") {
		return src == filepath.Base(path)
	}
	return strings.HasSuffix(p, "/"+strings.TrimPrefix(src, "./")) ||
		strings.HasSuffix(src, "/"+strings.TrimPrefix(p, "./"))
}

// projectDir returns the directory of a project path, which may name either
// a directory or a project file.
func projectDir(projectPath string) string {
	if projectPath == "" {
		return ""
	}
	if ext := filepath.Ext(projectPath); ext == ".csproj" || ext == ".sln" {
		return filepath.Dir(projectPath)
	}
	return projectPath
}
