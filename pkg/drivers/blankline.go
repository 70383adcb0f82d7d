package drivers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/stylefix/pkg/decl"
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// BlankLine fixes brace placement and the blank lines around braces and
// comments.
type BlankLine struct{}

// Category implements Driver.
func (BlankLine) Category() rules.Category { return rules.CategoryBlankLine }

// Fix implements Driver.
func (BlankLine) Fix(ctx *Context) {
	applyAll(ctx, []ruleFix{
		{rules.ClosingBraceOwnLine, splitClosingBraces},
		{rules.BracesMustNotBeOmitted, wrapInBraces},
		{rules.OpeningBraceBlankAfter, removeBlankAfter},
		{rules.ClosingBraceBlankBefore, removeBlankBefore},
		{rules.CommentBlankAfter, removeBlankAfter},
		{rules.ClosingBraceNeedsBlank, insertBlankAfter},
	})

	// SA1514 and SA1515 share one fix; both rules are checked so each is
	// claimed even when the other already matched.
	for _, line := range ctx.Doc.Lines() {
		claimed := claim(ctx, line, rules.DocHeaderNeedsBlankBefore, rules.CommentNeedsBlankBefore)
		if len(claimed) == 0 {
			continue
		}
		if err := insertBlankBefore(ctx, line, nil); err != nil {
			ctx.skip(line, err, claimed...)
		}
	}
}

// splitClosingBraces puts every "}" on its own line. Text trailing a brace
// that starts with ";", "," or ")" stays attached to it.
func splitClosingBraces(ctx *Context, line *document.Line, _ *document.Violation) error {
	segments := strings.Split(line.Text, "}")
	if len(segments) < 2 {
		return mismatch("no closing brace")
	}

	indent := line.Indent()
	var out []string
	if head := strings.TrimSpace(segments[0]); head != "" {
		out = append(out, indent+head)
	}
	for _, seg := range segments[1:] {
		brace := indent + "}"
		rest := strings.TrimSpace(seg)
		if rest != "" && strings.ContainsAny(rest[:1], ";,)") {
			brace += rest
			rest = ""
		}
		out = append(out, brace)
		if rest != "" {
			out = append(out, indent+rest)
		}
	}

	if len(out) < 2 {
		return mismatch("brace already on its own line")
	}

	line.Text = out[0]
	anchor := line
	for _, text := range out[1:] {
		next, err := ctx.Doc.InsertAfter(anchor, text)
		if err != nil {
			return err
		}
		anchor = next
	}
	return nil
}

//nolint:gochecknoglobals // Compiled pattern
var elseBody = regexp.MustCompile(`^(\s*else)\s+(\S.*)$`)

// wrapInBraces wraps the single-statement body of a conditional or loop in
// braces. `if(x>0) DoThing();` becomes `if(x>0) {`, `DoThing();`, `}`.
func wrapInBraces(ctx *Context, line *document.Line, _ *document.Violation) error {
	indent := line.Indent()

	if end, ok := decl.ConditionEnd(line.Text); ok {
		body := strings.TrimSpace(line.Text[end:])
		if strings.HasPrefix(body, "{") {
			return mismatch("body already braced")
		}
		if body == "" {
			return braceNextLine(ctx, line, strings.TrimRight(line.Text, " \t"))
		}

		line.Text = line.Text[:end] + " {"
		return insertLines(ctx, line, indent+body, indent+"}")
	}

	if m := elseBody.FindStringSubmatch(line.Text); m != nil && !strings.HasPrefix(m[2], "{") && !strings.HasPrefix(m[2], "if") {
		line.Text = m[1] + " {"
		return insertLines(ctx, line, indent+m[2], indent+"}")
	}

	if strings.Contains(line.Text, "(") && decl.ParenDepth(line.Text) != 0 {
		return mismatch("unbalanced parentheses")
	}
	if strings.TrimSpace(line.Text) == "" {
		return mismatch("blank line")
	}

	if _, err := ctx.Doc.InsertBefore(line, indent+"{"); err != nil {
		return err
	}
	_, err := ctx.Doc.InsertAfter(line, indent+"}")
	return err
}

// braceNextLine wraps the statement on the line after a bare condition.
func braceNextLine(ctx *Context, line *document.Line, head string) error {
	body := ctx.Doc.Next(line)
	if body == nil || body.IsBlank() {
		return mismatch("no statement after condition")
	}
	if strings.HasPrefix(strings.TrimSpace(body.Text), "{") {
		return mismatch("body already braced")
	}

	line.Text = head + " {"
	_, err := ctx.Doc.InsertAfter(body, line.Indent()+"}")
	return err
}

// insertLines inserts texts after anchor in order.
func insertLines(ctx *Context, anchor *document.Line, texts ...string) error {
	for _, text := range texts {
		next, err := ctx.Doc.InsertAfter(anchor, text)
		if err != nil {
			return err
		}
		anchor = next
	}
	return nil
}

func removeBlankAfter(ctx *Context, line *document.Line, _ *document.Violation) error {
	next := ctx.Doc.Next(line)
	if next == nil || !next.IsBlank() {
		return mismatch("next line is not blank")
	}
	ctx.Doc.Remove(next)
	return nil
}

func removeBlankBefore(ctx *Context, line *document.Line, _ *document.Violation) error {
	prev := ctx.Doc.Prev(line)
	if prev == nil {
		return mismatch("first line")
	}
	if !prev.IsBlank() {
		return mismatch("previous line is not blank")
	}
	ctx.Doc.Remove(prev)
	return nil
}

func insertBlankAfter(ctx *Context, line *document.Line, _ *document.Violation) error {
	if next := ctx.Doc.Next(line); next != nil && next.IsBlank() {
		return mismatch("already followed by a blank line")
	}
	_, err := ctx.Doc.InsertAfter(line, "")
	return err
}

func insertBlankBefore(ctx *Context, line *document.Line, _ *document.Violation) error {
	prev := ctx.Doc.Prev(line)
	if prev == nil {
		return mismatch("first line")
	}
	if prev.IsBlank() {
		return mismatch("already preceded by a blank line")
	}
	_, err := ctx.Doc.InsertBefore(line, "")
	return err
}
