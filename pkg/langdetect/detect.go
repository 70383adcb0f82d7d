// Package langdetect decides which files enter the fix pipeline. It uses
// go-enry to confirm a file is C# and to recognise generated sources that
// must not be rewritten.
package langdetect

import (
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// CSharp is the go-enry name of the C# language.
const CSharp = "C#"

// Verdict explains why a file was accepted or rejected.
type Verdict int

const (
	// Accept means the file is hand-written C#.
	Accept Verdict = iota

	// NotCSharp means the file is some other language.
	NotCSharp

	// Generated means the file is produced by a tool (designer files,
	// source generators).
	Generated

	// Vendored means the file lives in a third-party or build output path.
	Vendored
)

// String returns a short reason suitable for logs.
func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case NotCSharp:
		return "not C#"
	case Generated:
		return "generated"
	case Vendored:
		return "vendored"
	default:
		return "unknown"
	}
}

// IsCSharp reports whether path with the given content is C#. The .cs
// extension is shared with Smalltalk, so ambiguous files go through
// go-enry's content heuristics.
func IsCSharp(path string, content []byte) bool {
	candidates := enry.GetLanguagesByExtension(path, content, nil)
	if !slices.Contains(candidates, CSharp) {
		return false
	}
	if len(candidates) == 1 {
		return true
	}

	lang := enry.GetLanguage(path, content)
	return lang == CSharp || !slices.Contains(candidates, lang)
}

// Classify returns the verdict for path and content.
func Classify(path string, content []byte) Verdict {
	switch {
	case !IsCSharp(path, content):
		return NotCSharp
	case enry.IsVendor(path):
		return Vendored
	case enry.IsGenerated(path, content):
		return Generated
	default:
		return Accept
	}
}
