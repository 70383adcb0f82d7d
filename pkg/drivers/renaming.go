package drivers

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Renaming records identifier renames for the naming rules. It never
// rewrites the line; an external, symbol-aware tool applies the map.
type Renaming struct{}

// Category implements Driver.
func (Renaming) Category() rules.Category { return rules.CategoryRenaming }

// Fix implements Driver.
func (Renaming) Fix(ctx *Context) {
	applyAll(ctx, []ruleFix{
		{rules.ElementUpperCase, renameTo(true)},
		{rules.ConstUpperCase, renameTo(true)},
		{rules.FieldLowerCase, renameTo(false)},
		{rules.AccessibleFieldUpper, renameTo(true)},
	})
}

// renameTo returns a fix that records old→new using the case named in the
// message, falling back to the rule's own default.
func renameTo(defaultUpper bool) lineFix {
	return func(ctx *Context, _ *document.Line, v *document.Violation) error {
		name := offendingName(v.Message)
		if name == "" {
			return mismatch("no identifier in %q", v.Message)
		}

		upper := defaultUpper
		if c, ok := targetCase(v.Message); ok {
			upper = c
		}

		renamed := withInitial(name, upper)
		if renamed == name {
			return mismatch("%s already has the expected case", name)
		}

		if _, exists := ctx.Renames[name]; !exists {
			ctx.Renames[name] = renamed
		}
		return nil
	}
}

// offendingName returns the last word of msg without a trailing period or quotes.
func offendingName(msg string) string {
	words := strings.Fields(msg)
	if len(words) == 0 {
		return ""
	}
	name := strings.TrimSuffix(words[len(words)-1], ".")
	return strings.Trim(name, `'"`)
}

// targetCase reports whether msg asks for an upper-case (true) or lower-case
// (false) initial.
func targetCase(msg string) (upper, ok bool) {
	normalized := strings.ToLower(strings.ReplaceAll(msg, "-", " "))
	switch {
	case strings.Contains(normalized, "upper case"):
		return true, true
	case strings.Contains(normalized, "lower case"):
		return false, true
	default:
		return false, false
	}
}

func withInitial(name string, upper bool) string {
	r, size := utf8.DecodeRuneInString(name)
	if upper {
		r = unicode.ToUpper(r)
	} else {
		r = unicode.ToLower(r)
	}
	return string(r) + name[size:]
}
