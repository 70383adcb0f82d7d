package drivers

import (
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// CheckErrors scans doc for the compile-failed rule and returns the reported
// 1-based line number of the first occurrence. The rule filter does not
// apply: a compile error is always seen, and only force-fix overrides it.
func CheckErrors(doc *document.Document) (line int, found bool) {
	for _, l := range doc.Lines() {
		if l.Removed {
			continue
		}
		if v := doc.Violation(l, rules.CompileFailed); v != nil {
			v.Resolved = true
			return v.Line, true
		}
	}
	return 0, false
}
