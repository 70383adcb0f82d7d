package drivers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/stylefix/pkg/document"
	"github.com/yaklabco/stylefix/pkg/rules"
)

// Spacing applies local regex substitutions for the spacing rules.
type Spacing struct{}

// Category implements Driver.
func (Spacing) Category() rules.Category { return rules.CategorySpacing }

// Fix implements Driver.
func (Spacing) Fix(ctx *Context) {
	applyAll(ctx, []ruleFix{
		{rules.KeywordsSpacing, substitute(keywordSpacing)},
		{rules.CommasSpacing, substitute(commaSpacing)},
		{rules.SemicolonsSpacing, substitute(semicolonSpacing)},
		{rules.CommentSpacing, substitute(commentSpacing)},
		{rules.ClosingParenSpacing, substitute(closingParenSpacing)},
		{rules.OpeningBracketSpacing, substitute(openingBracketSpacing)},
		{rules.TabsMustNotBeUsed, replaceTabs},
		{rules.UseBuiltInTypeAlias, useTypeAlias},
	})
}

// replacement is one regex substitution.
type replacement struct {
	pattern *regexp.Regexp
	repl    string
}

func rx(pattern, repl string) replacement {
	return replacement{regexp.MustCompile(pattern), repl}
}

//nolint:gochecknoglobals // Compiled substitution tables
var (
	keywordSpacing = []replacement{
		rx(`\b(catch|fixed|for|foreach|from|group|if|in|into|join|let|lock|orderby|return|select|stackalloc|switch|throw|using|where|while|yield)([(\["'@])`, `$1 $2`),
		rx(`\b(checked|default|nameof|sizeof|typeof|unchecked)[ \t]+\(`, `$1(`),
		rx(`\bnew[ \t]+\[`, `new[`),
	}

	commaSpacing = []replacement{
		rx(`(\S)[ \t]+,`, `$1,`),
		rx(`,([^\s\],>])`, `, $1`),
	}

	semicolonSpacing = []replacement{
		rx(`(\S)[ \t]+;`, `$1;`),
		rx(`;([^\s;)])`, `; $1`),
	}

	commentSpacing = []replacement{
		rx(`(^|[^/:])//[ \t]*([^/\s])`, `${1}// ${2}`),
	}

	closingParenSpacing = []replacement{
		rx(`(\S)[ \t]+\)`, `$1)`),
		rx(`\)[ \t]+([)\];,])`, `)$1`),
		rx(`([=(,][ \t]*|\breturn[ \t]+)(\(\w+\))[ \t]+([\w(])`, `$1$2$3`),
	}

	openingBracketSpacing = []replacement{
		rx(`(\S)[ \t]+\[`, `$1[`),
		rx(`\[[ \t]+(\S)`, `[$1`),
	}
)

// substitute returns a fix that applies table in order and fails when the
// line is left unchanged.
func substitute(table []replacement) lineFix {
	return func(_ *Context, line *document.Line, _ *document.Violation) error {
		text := line.Text
		for _, r := range table {
			text = r.pattern.ReplaceAllString(text, r.repl)
		}
		if text == line.Text {
			return mismatch("no spacing to correct")
		}
		line.Text = text
		return nil
	}
}

func replaceTabs(_ *Context, line *document.Line, _ *document.Violation) error {
	if !strings.Contains(line.Text, "\t") {
		return mismatch("no tab")
	}
	line.Text = strings.ReplaceAll(line.Text, "\t", "    ")
	return nil
}

// typeAlias maps a C# alias to the framework type names it replaces.
type typeAlias struct {
	alias   string
	pattern *regexp.Regexp
}

func alias(name, typeName string) typeAlias {
	return typeAlias{
		alias:   name,
		pattern: regexp.MustCompile(`(^|[^.\w])(?:System\.)?` + typeName + `\b`),
	}
}

//nolint:gochecknoglobals // Static alias table
var typeAliases = []typeAlias{
	alias("bool", "Boolean"),
	alias("byte", "Byte"),
	alias("sbyte", "SByte"),
	alias("char", "Char"),
	alias("decimal", "Decimal"),
	alias("double", "Double"),
	alias("float", "Single"),
	alias("short", "Int16"),
	alias("ushort", "UInt16"),
	alias("int", "Int32"),
	alias("uint", "UInt32"),
	alias("long", "Int64"),
	alias("ulong", "UInt64"),
	alias("object", "Object"),
	alias("string", "String"),
}

// useTypeAlias rewrites only the type the message names, e.g. 'int'.
func useTypeAlias(_ *Context, line *document.Line, v *document.Violation) error {
	text := line.Text
	named := false
	for _, ta := range typeAliases {
		if !strings.Contains(v.Message, "'"+ta.alias+"'") {
			continue
		}
		named = true
		text = ta.pattern.ReplaceAllString(text, "${1}"+ta.alias)
	}

	if !named {
		return mismatch("message names no built-in alias")
	}
	if text == line.Text {
		return mismatch("no framework type name on line")
	}
	line.Text = text
	return nil
}
