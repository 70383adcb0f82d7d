package drivers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/stylefix/pkg/decl"
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Readability qualifies member access, cleans empty comments and strings,
// and lays out parameter lists.
type Readability struct{}

// Category implements Driver.
func (Readability) Category() rules.Category { return rules.CategoryReadability }

// Fix implements Driver.
func (Readability) Fix(ctx *Context) {
	applyAll(ctx, []ruleFix{
		{rules.PrefixLocalCalls, prefixThis(`(^|[\s()])`)},
		{rules.EmptyComment, removeEmptyComment},
		{rules.PrefixCallsCorrectly, prefixThis(`(^|[\s()\[\]!])`)},
		{rules.UseStringEmpty, useStringEmpty},
		{rules.ParametersSeparated, separateParameters},
		{rules.FirstParameterOnLine, firstParameterOnNextLine},
		{rules.ParameterFollowsComma, oneParameterPerLine},
	})
}

// continuation is the extra indentation of a parameter moved to its own line.
const continuation = "    "

// memberWordIndex is the position of the member name in the analyzer
// message, e.g. "The call to value must begin with ...".
const memberWordIndex = 3

// prefixThis returns a fix that qualifies the member named in the message
// with "this." wherever it follows one of the lead characters.
func prefixThis(lead string) lineFix {
	return func(_ *Context, line *document.Line, v *document.Violation) error {
		words := strings.Fields(v.Message)
		if len(words) <= memberWordIndex {
			return mismatch("message too short: %q", v.Message)
		}
		member := strings.Trim(words[memberWordIndex], `'".,`)
		if member == "" {
			return mismatch("no member name in %q", v.Message)
		}

		pattern := regexp.MustCompile(lead + `(` + regexp.QuoteMeta(member) + `)(\W|$)`)
		text := pattern.ReplaceAllString(line.Text, "${1}this.${2}${3}")
		if text == line.Text {
			return mismatch("%s not found unqualified", member)
		}
		line.Text = text
		return nil
	}
}

// removeEmptyComment drops a trailing empty "//" and removes the line when
// nothing else is left on it.
func removeEmptyComment(ctx *Context, line *document.Line, _ *document.Violation) error {
	idx := strings.Index(line.Text, "//")
	if idx < 0 {
		return mismatch("no comment")
	}
	if strings.TrimSpace(line.Text[idx+2:]) != "" {
		return mismatch("comment is not empty")
	}

	code := strings.TrimRight(line.Text[:idx], " \t")
	if strings.TrimSpace(code) == "" {
		ctx.Doc.Remove(line)
		return nil
	}
	line.Text = code
	return nil
}

//nolint:gochecknoglobals // Compiled pattern
var emptyStringLiteral = regexp.MustCompile(`(^|[^\w@"\\$])""`)

func useStringEmpty(_ *Context, line *document.Line, _ *document.Violation) error {
	text := emptyStringLiteral.ReplaceAllString(line.Text, "${1}string.Empty")
	if text == line.Text {
		return mismatch(`no "" literal`)
	}
	line.Text = text
	return nil
}

// separateParameters merges the continuation lines of a split parameter
// list while the parenthesis depth stays open, then lays the list out one
// parameter per line.
func separateParameters(ctx *Context, line *document.Line, _ *document.Violation) error {
	depth := decl.ParenDepth(line.Text)
	var tail []*document.Line
	for next := ctx.Doc.Next(line); depth > 0; next = ctx.Doc.Next(next) {
		if next == nil {
			return mismatch("parenthesis never closes")
		}
		depth += decl.ParenDepth(next.Text)
		tail = append(tail, next)
	}

	merged := line.Text
	for _, t := range tail {
		merged = strings.TrimRight(merged, " \t")
		if !strings.HasSuffix(merged, "(") {
			merged += " "
		}
		merged += strings.TrimSpace(t.Text)
	}

	open, closing, ok := parameterList(merged)
	if !ok {
		return mismatch("no parameter list")
	}

	params := decl.SplitTopLevel(merged[open+1 : closing])
	if len(params) < 2 && len(tail) == 0 {
		return mismatch("nothing to separate")
	}

	// Merged lines are rewritten as well; claim their reports before moving them.
	for _, t := range tail {
		ctx.Doc.IsViolated(t, rules.ParametersSeparated)
		ctx.Doc.Absorb(line, t)
	}

	if len(params) < 2 {
		line.Text = merged
		return nil
	}

	indent := line.Indent() + continuation
	line.Text = strings.TrimRight(merged[:open+1], " \t")
	anchor := line
	for i, p := range params {
		text := indent + p
		if i < len(params)-1 {
			text += ","
		} else {
			text += merged[closing:]
		}
		next, err := ctx.Doc.InsertAfter(anchor, text)
		if err != nil {
			return err
		}
		anchor = next
	}
	return nil
}

// parameterList returns the positions of the first "(" on s and its
// matching ")".
func parameterList(s string) (open, closing int, ok bool) {
	open = strings.Index(s, "(")
	if open < 0 {
		return 0, 0, false
	}

	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return open, i, true
			}
		}
	}
	return 0, 0, false
}

// firstParameterOnNextLine moves the text after the last unmatched "(" to
// its own line.
func firstParameterOnNextLine(ctx *Context, line *document.Line, _ *document.Violation) error {
	text := line.Text
	closed := 0
	for j := len(text) - 1; j >= 0; j-- {
		switch text[j] {
		case ')':
			closed++
		case '(':
			if closed > 0 {
				closed--
				continue
			}

			rest := strings.TrimSpace(text[j+1:])
			if rest == "" {
				return mismatch("first parameter already on its own line")
			}
			line.Text = text[:j+1]
			_, err := ctx.Doc.InsertAfter(line, line.Indent()+continuation+rest)
			return err
		}
	}
	return mismatch("no open parenthesis")
}

// oneParameterPerLine splits a line at the commas of its outermost
// parameter list level.
func oneParameterPerLine(ctx *Context, line *document.Line, _ *document.Violation) error {
	parts, opened := splitAtListLevel(line.Text)
	if len(parts) < 2 {
		return mismatch("single parameter on line")
	}

	indent := line.Indent()
	if opened {
		indent += continuation
	}

	line.Text = strings.TrimRight(parts[0], " \t")
	anchor := line
	for _, p := range parts[1:] {
		next, err := ctx.Doc.InsertAfter(anchor, indent+strings.TrimSpace(p))
		if err != nil {
			return err
		}
		anchor = next
	}
	return nil
}

// splitAtListLevel splits s after every comma at the nesting depth of its
// first comma. Each part but the last keeps its comma. opened reports
// whether the list's "(" is on this line.
func splitAtListLevel(s string) (parts []string, opened bool) {
	level, depth, start := -1, 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '<', '{':
			depth++
		case ')', ']', '>', '}':
			depth--
		case ',':
			if level < 0 {
				level = depth
			}
			if depth == level {
				parts = append(parts, s[start:i+1])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" {
		parts = append(parts, s[start:])
	}
	return parts, level > 0
}
