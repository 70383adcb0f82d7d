package drivers

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/stylefix/pkg/decl"
	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Documentation synthesizes or repairs `///` headers and normalizes the
// free text inside them.
type Documentation struct{}

// Category implements Driver.
func (Documentation) Category() rules.Category { return rules.CategoryDocumentation }

// headerRules all trigger a header rebuild for the flagged declaration.
//
//nolint:gochecknoglobals // Static rule list
var headerRules = []rules.ID{
	rules.ElementsDocumented,
	rules.PartialElementsDocumented,
	rules.EnumItemsDocumented,
	rules.ParametersDocumented,
	rules.ParameterDocsMatch,
	rules.TypeParametersDocumented,
	rules.TypeParameterDocsMatch,
}

// Fix implements Driver.
func (Documentation) Fix(ctx *Context) {
	for _, line := range ctx.Doc.Lines() {
		claimed := claim(ctx, line, headerRules...)
		if len(claimed) == 0 {
			continue
		}
		if err := writeHeader(ctx, line); err != nil {
			ctx.skip(line, err, claimed...)
		}
	}

	applyAll(ctx, []ruleFix{
		{rules.DocTextCapitalized, capitalizeSummary},
		{rules.DocTextEndsWithPeriod, terminateSummary},
	})
}

// Default texts for event handler parameters.
const (
	senderText = "The source of the event."
	eventText  = "The event data."
)

// section is one tag of an existing header with the lines it spans.
type section struct {
	tag   string
	name  string
	lines []*document.Line
}

//nolint:gochecknoglobals // Compiled patterns
var (
	openTag  = regexp.MustCompile(`^<([A-Za-z]+)\b[^>]*?(/?)>`)
	nameAttr = regexp.MustCompile(`name\s*=\s*"([^"]*)"`)
)

// writeHeader rebuilds the documentation header of the declaration on line.
//
// The header goes above any attribute lines. Authored tag bodies are kept;
// missing summary, typeparam, param and returns tags are synthesized; param
// and typeparam tags that no longer match the declaration are dropped; other
// tags such as remarks are kept after the generated ones.
func writeHeader(ctx *Context, line *document.Line) error {
	if line.IsBlank() {
		return mismatch("blank declaration line")
	}

	params, _ := decl.Parameters(line.Text)
	types := decl.TypeParameters(line.Text)
	returns := decl.NeedsReturns(line.Text)
	callback := decl.IsCallback(params)

	top := line
	for prev := ctx.Doc.Prev(top); prev != nil && decl.IsAttribute(prev.Text); prev = ctx.Doc.Prev(top) {
		top = prev
	}

	var block []*document.Line
	for prev := ctx.Doc.Prev(top); prev != nil && decl.IsDocComment(prev.Text); prev = ctx.Doc.Prev(prev) {
		block = append([]*document.Line{prev}, block...)
	}

	b := headerBuilder{prefix: line.Indent() + "/// "}
	sections := parseSections(block)

	if s := findSection(sections, "summary", ""); s != nil {
		b.keep(s)
	} else {
		b.synthesize("summary", "", "")
	}

	for _, t := range types {
		if s := findSection(sections, "typeparam", t); s != nil {
			b.keep(s)
		} else {
			b.synthesize("typeparam", t, "")
		}
	}

	for _, p := range params {
		if s := findSection(sections, "param", p); s != nil {
			b.keep(s)
			continue
		}
		body := ""
		if callback {
			switch p {
			case "sender":
				body = senderText
			case "e":
				body = eventText
			}
		}
		b.synthesize("param", p, body)
	}

	if s := findSection(sections, "returns", ""); s != nil {
		b.keep(s)
	} else if returns {
		b.synthesize("returns", "", "")
	}

	for _, s := range sections {
		switch s.tag {
		case "summary", "returns", "param", "typeparam":
			continue
		}
		b.keep(&s)
	}

	if b.unchanged(block) {
		return mismatch("header already complete")
	}

	for _, old := range block {
		if !b.kept[old] {
			ctx.Doc.Remove(old)
		}
	}
	for _, entry := range b.entries {
		var err error
		if entry.line == nil {
			_, err = ctx.Doc.InsertBefore(top, entry.text)
		} else {
			err = ctx.Doc.MoveBefore(entry.line, top)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// headerEntry is either a kept line or new text.
type headerEntry struct {
	line *document.Line
	text string
}

type headerBuilder struct {
	prefix  string
	entries []headerEntry
	kept    map[*document.Line]bool
}

func (b *headerBuilder) keep(s *section) {
	if b.kept == nil {
		b.kept = make(map[*document.Line]bool)
	}
	for _, l := range s.lines {
		b.kept[l] = true
		b.entries = append(b.entries, headerEntry{line: l})
	}
}

// unchanged reports whether the entries are exactly the existing block in
// its original order.
func (b *headerBuilder) unchanged(block []*document.Line) bool {
	if len(b.entries) != len(block) {
		return false
	}
	for i, entry := range b.entries {
		if entry.line != block[i] {
			return false
		}
	}
	return true
}

func (b *headerBuilder) synthesize(tag, name, body string) {
	open := "<" + tag + ">"
	if name != "" {
		open = `<` + tag + ` name="` + name + `">`
	}
	b.entries = append(b.entries,
		headerEntry{text: b.prefix + open},
		headerEntry{text: b.prefix + body},
		headerEntry{text: b.prefix + "</" + tag + ">"},
	)
}

// parseSections groups header lines by the tag they belong to. Text outside
// any tag becomes an untagged section.
func parseSections(block []*document.Line) []section {
	var (
		out []section
		cur *section
	)

	for _, l := range block {
		content := docContent(l.Text)

		if cur != nil {
			cur.lines = append(cur.lines, l)
			if strings.Contains(content, "</"+cur.tag+">") {
				out = append(out, *cur)
				cur = nil
			}
			continue
		}

		m := openTag.FindStringSubmatch(content)
		if m == nil {
			out = append(out, section{lines: []*document.Line{l}})
			continue
		}

		s := section{tag: m[1], lines: []*document.Line{l}}
		if n := nameAttr.FindStringSubmatch(m[0]); n != nil {
			s.name = n[1]
		}
		if m[2] == "/" || strings.Contains(content, "</"+s.tag+">") {
			out = append(out, s)
			continue
		}
		cur = &s
	}

	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

func findSection(sections []section, tag, name string) *section {
	for i := range sections {
		if sections[i].tag == tag && sections[i].name == name {
			return &sections[i]
		}
	}
	return nil
}

// docContent returns the text after "///", trimmed.
func docContent(text string) string {
	_, after, _ := strings.Cut(text, "///")
	return strings.TrimSpace(after)
}

//nolint:gochecknoglobals // Compiled patterns
var (
	capitalizable = regexp.MustCompile(`/// [a-zA-Z0-9 ]+`)
	terminable    = regexp.MustCompile(`/// [a-zA-Z0-9]+`)
)

// capitalizeSummary upper-cases the first letter of each text line of the
// header above the flagged line, up to the opening summary tag.
func capitalizeSummary(ctx *Context, line *document.Line, _ *document.Violation) error {
	changed := walkHeader(ctx, line, func(l *document.Line) bool {
		loc := capitalizable.FindStringIndex(l.Text)
		if loc == nil {
			return false
		}
		at := loc[0] + len("/// ")
		r, size := utf8.DecodeRuneInString(l.Text[at:])
		if !unicode.IsLower(r) {
			return false
		}
		l.Text = l.Text[:at] + string(unicode.ToUpper(r)) + l.Text[at+size:]
		return true
	})
	if !changed {
		return mismatch("no lower-case documentation text")
	}
	return nil
}

// terminateSummary appends a period to each text line of the header that
// does not already end with one or with a tag.
func terminateSummary(ctx *Context, line *document.Line, _ *document.Violation) error {
	changed := walkHeader(ctx, line, func(l *document.Line) bool {
		if !terminable.MatchString(l.Text) {
			return false
		}
		trimmed := strings.TrimRight(l.Text, " \t")
		if strings.HasSuffix(trimmed, ">") || strings.HasSuffix(trimmed, ".") {
			return false
		}
		l.Text = trimmed + "."
		return true
	})
	if !changed {
		return mismatch("documentation text already terminated")
	}
	return nil
}

// walkHeader visits header lines upward from line (itself included when it
// is a doc comment) until the opening summary tag or a line that is neither
// a doc comment nor an attribute.
func walkHeader(ctx *Context, line *document.Line, visit func(*document.Line) bool) bool {
	changed := false
	cur := line
	if !decl.IsDocComment(cur.Text) {
		cur = ctx.Doc.Prev(cur)
	}

	for ; cur != nil; cur = ctx.Doc.Prev(cur) {
		switch {
		case decl.IsAttribute(cur.Text):
			continue
		case !decl.IsDocComment(cur.Text):
			return changed
		}

		if visit(cur) {
			changed = true
		}
		if strings.Contains(cur.Text, "<summary>") {
			return changed
		}
	}
	return changed
}
