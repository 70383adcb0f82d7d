package drivers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestBlankLine_WrapInBraces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"same line body", "if(x>0) DoThing();", "if(x>0) {\nDoThing();\n}"},
		{"indented", "    if (ok) return;", "    if (ok) {\n    return;\n    }"},
		{"nested parens", "while (Next(a, b)) Step();", "while (Next(a, b)) {\nStep();\n}"},
		{"body on next line", "if (ok)\n    Run();", "if (ok) {\n    Run();\n}"},
		{"else", "else Run();", "else {\nRun();\n}"},
		{"else if", "else if (x) y();", "else if (x) {\ny();\n}"},
		{"bare statement", "    Run();", "    {\n    Run();\n    }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, ctx := run(t, drivers.BlankLine{}, tt.input, v(rules.BracesMustNotBeOmitted, 1, ""))
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 1, resolvedCount(ctx))
		})
	}
}

func TestBlankLine_WrapInBraces_Mismatch(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		"if (ok) { Run(); }",
		"if (ok)\n{",
		"Foo(a,",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			out, ctx := run(t, drivers.BlankLine{}, input, v(rules.BracesMustNotBeOmitted, 1, ""))
			assert.Equal(t, input, out)
			assert.Equal(t, 0, resolvedCount(ctx))
		})
	}
}

func TestBlankLine_SplitClosingBraces(t *testing.T) {
	t.Parallel()

	out, _ := run(t, drivers.BlankLine{}, "    x = 1; }", v(rules.ClosingBraceOwnLine, 1, ""))
	assert.Equal(t, "    x = 1;\n    }", out)

	out, _ = run(t, drivers.BlankLine{}, "    Run(() => { Go(); });", v(rules.ClosingBraceOwnLine, 1, ""))
	assert.Equal(t, "    Run(() => { Go();\n    });", out)

	out, ctx := run(t, drivers.BlankLine{}, "    });", v(rules.ClosingBraceOwnLine, 1, ""))
	assert.Equal(t, "    });", out)
	assert.Equal(t, 0, resolvedCount(ctx))
}

func TestBlankLine_RemoveBlankLines(t *testing.T) {
	t.Parallel()

	out, _ := run(t, drivers.BlankLine{}, "{\n\n    x;\n\n}\n// c\n\ny;",
		v(rules.OpeningBraceBlankAfter, 1, ""),
		v(rules.ClosingBraceBlankBefore, 5, ""),
		v(rules.CommentBlankAfter, 6, ""),
	)

	assert.Equal(t, "{\n    x;\n}\n// c\ny;", out)
}

func TestBlankLine_FirstLineBoundary(t *testing.T) {
	t.Parallel()

	out, ctx := run(t, drivers.BlankLine{}, "}\nx;",
		v(rules.ClosingBraceBlankBefore, 1, ""),
		v(rules.DocHeaderNeedsBlankBefore, 1, ""),
	)

	assert.Equal(t, "}\nx;", out)
	assert.Equal(t, 0, resolvedCount(ctx))
	if assert.Len(t, ctx.Skipped, 2) {
		assert.Contains(t, ctx.Skipped[0].Reason, "first line")
		assert.Contains(t, ctx.Skipped[1].Reason, "first line")
	}
}

func TestBlankLine_InsertBlankLines(t *testing.T) {
	t.Parallel()

	out, ctx := run(t, drivers.BlankLine{}, "}\nx;\n/// <summary>\n// note",
		v(rules.ClosingBraceNeedsBlank, 1, ""),
		v(rules.DocHeaderNeedsBlankBefore, 3, ""),
		v(rules.CommentNeedsBlankBefore, 3, ""),
	)

	assert.Equal(t, "}\n\nx;\n\n/// <summary>\n// note", out)
	assert.Equal(t, 3, resolvedCount(ctx))
}

func TestBlankLine_AlreadyBlank(t *testing.T) {
	t.Parallel()

	out, ctx := run(t, drivers.BlankLine{}, "}\n\n// note",
		v(rules.ClosingBraceNeedsBlank, 1, ""),
		v(rules.CommentNeedsBlankBefore, 3, ""),
	)

	assert.Equal(t, "}\n\n// note", out)
	assert.Equal(t, 0, resolvedCount(ctx))
}
