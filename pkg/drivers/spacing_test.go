package drivers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/drivers"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rule  rules.ID
		msg   string
		input string
		want  string
	}{
		{"keyword paren", rules.KeywordsSpacing, "", "if(x) return(y);", "if (x) return (y);"},
		{"typeof", rules.KeywordsSpacing, "", "var t = typeof (int);", "var t = typeof(int);"},
		{"new array", rules.KeywordsSpacing, "", "var a = new [] { 1 };", "var a = new[] { 1 };"},
		{"comma", rules.CommasSpacing, "", "Foo(a ,b);", "Foo(a, b);"},
		{"array rank kept", rules.CommasSpacing, "", "int[,] grid = new int[2,3];", "int[,] grid = new int[2, 3];"},
		{"semicolons", rules.SemicolonsSpacing, "", "for (int i = 0;i < n ;i++)", "for (int i = 0; i < n; i++)"},
		{"comment", rules.CommentSpacing, "", "x = 1; //note", "x = 1; // note"},
		{"comment extra spaces", rules.CommentSpacing, "", "//   note", "// note"},
		{"closing paren", rules.ClosingParenSpacing, "", "Foo(a, b );", "Foo(a, b);"},
		{"cast", rules.ClosingParenSpacing, "", "var x = (int) y;", "var x = (int)y;"},
		{"bracket", rules.OpeningBracketSpacing, "", "int [] a = b [ 0];", "int[] a = b[0];"},
		{"tabs", rules.TabsMustNotBeUsed, "", "\tint x;\t// a", "    int x;    // a"},
		{"alias", rules.UseBuiltInTypeAlias, "Use the built-in type alias 'int'.", "System.Int32 x = 5;", "int x = 5;"},
		{"alias short name", rules.UseBuiltInTypeAlias, "Use 'string'.", "String s = Int32.Parse(t);", "string s = Int32.Parse(t);"},
		{"alias float", rules.UseBuiltInTypeAlias, "Use 'float'.", "Single f;", "float f;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, ctx := run(t, drivers.Spacing{}, tt.input, v(tt.rule, 1, tt.msg))
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 1, resolvedCount(ctx))
		})
	}
}

func TestSpacing_Idempotent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule  rules.ID
		msg   string
		input string
	}{
		{rules.KeywordsSpacing, "", "if (x) return (y);"},
		{rules.CommasSpacing, "", "Foo(a, b);"},
		{rules.SemicolonsSpacing, "", "for (int i = 0; i < n; i++)"},
		{rules.CommentSpacing, "", "/// <summary>"},
		{rules.CommentSpacing, "", "var u = \"http://example.com\"; // ok"},
		{rules.ClosingParenSpacing, "", "if (x) return;"},
		{rules.OpeningBracketSpacing, "", "[Test]"},
		{rules.UseBuiltInTypeAlias, "Use 'int'.", "int x = 5;"},
		{rules.UseBuiltInTypeAlias, "Use 'string'.", "var s = Foo.String;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			out, ctx := run(t, drivers.Spacing{}, tt.input, v(tt.rule, 1, tt.msg))
			assert.Equal(t, tt.input, out)
			assert.Equal(t, 0, resolvedCount(ctx), "unchanged line keeps its violation open")
		})
	}
}

func TestSpacing_OnlyFlaggedLines(t *testing.T) {
	t.Parallel()

	out, _ := run(t, drivers.Spacing{}, "Foo(a ,b);\nBar(a ,b);", v(rules.CommasSpacing, 2, ""))
	assert.Equal(t, "Foo(a ,b);\nBar(a, b);", out)
}
