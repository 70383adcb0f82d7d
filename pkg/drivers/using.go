package drivers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Using relocates using directives inside the namespace body. The rule is
// disabled by default; enable SA1200 in the configuration to run it.
type Using struct{}

// Category implements Driver.
func (Using) Category() rules.Category { return rules.CategoryUsing }

//nolint:gochecknoglobals // Compiled pattern
var namespaceDecl = regexp.MustCompile(`^\s*namespace\b`)

// Fix implements Driver.
func (Using) Fix(ctx *Context) {
	// Last directive placed after each namespace brace, so several
	// directives keep their relative order.
	placed := make(map[*document.Line]*document.Line)

	apply(ctx, rules.UsingPlacement, func(ctx *Context, line *document.Line, _ *document.Violation) error {
		brace, err := namespaceBrace(ctx, line)
		if err != nil {
			return err
		}

		anchor := brace
		if last, ok := placed[brace]; ok {
			anchor = last
		}

		line.Text = brace.Indent() + continuation + strings.TrimSpace(line.Text)
		if err := ctx.Doc.MoveAfter(line, anchor); err != nil {
			return err
		}
		placed[brace] = line
		return nil
	})
}

// namespaceBrace finds the opening brace of the first namespace declared
// after line. Content sharing a line with the brace is moved to its own line.
func namespaceBrace(ctx *Context, line *document.Line) (*document.Line, error) {
	cur := ctx.Doc.Next(line)
	for cur != nil && !namespaceDecl.MatchString(cur.Text) {
		cur = ctx.Doc.Next(cur)
	}
	if cur == nil {
		return nil, mismatch("no namespace after directive")
	}
	if strings.HasSuffix(strings.TrimSpace(cur.Text), ";") {
		return nil, mismatch("file-scoped namespace")
	}

	for ; cur != nil; cur = ctx.Doc.Next(cur) {
		idx := strings.Index(cur.Text, "{")
		if idx < 0 {
			continue
		}

		if trailing := strings.TrimSpace(cur.Text[idx+1:]); trailing != "" {
			cur.Text = cur.Text[:idx+1]
			if _, err := ctx.Doc.InsertAfter(cur, cur.Indent()+continuation+trailing); err != nil {
				return nil, err
			}
		}
		return cur, nil
	}
	return nil, mismatch("namespace has no opening brace")
}
