package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/stylefix/pkg/analysis"
)

// FormatViolation formats one violation for terminal output:
//
//	path:line  open  message  (SA1122)
//	    skipped: extraction mismatch: ...
func (s *Styles) FormatViolation(v *analysis.ViolationEntry) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(v.FilePath), v.Line)

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatStatus(v.Fixed),
		s.Message.Render(v.Message),
		s.RuleID.Render("("+v.RuleID+")"),
	))

	if v.SkipReason != "" {
		builder.WriteString("    " + s.Dim.Render("skipped:") + " " + s.Reason.Render(v.SkipReason) + "\n")
	}

	return builder.String()
}

// FormatStatus returns the styled status word of a violation.
func (s *Styles) FormatStatus(fixed bool) string {
	if fixed {
		return s.Fixed.Render("fixed")
	}
	return s.Open.Render("open")
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(fa *analysis.FileAnalysis) string {
	header := s.FilePath.Render(fa.Path)

	var parts []string
	if fa.Fixed > 0 {
		parts = append(parts, fmt.Sprintf("%d fixed", fa.Fixed))
	}
	if fa.Remaining > 0 {
		parts = append(parts, fmt.Sprintf("%d open", fa.Remaining))
	}
	if fa.Written {
		parts = append(parts, "written")
	}
	if len(parts) > 0 {
		header += s.Dim.Render(" (" + strings.Join(parts, ", ") + ")")
	}
	return header
}

// FormatFileError formats a file that could not be fixed.
func (s *Styles) FormatFileError(fe *analysis.FileError) string {
	label := "error"
	if fe.CompileError {
		label = "does not compile"
	}
	return fmt.Sprintf("%s: %s\n", s.FilePath.Render(fe.FilePath), s.Error.Render(label+": "+fe.Message))
}
