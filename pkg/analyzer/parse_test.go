package analyzer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestParseText(t *testing.T) {
	t.Parallel()

	out := []byte(`StyleCop analysis started
SA1600:Widget.cs:12 - The method must have a documentation header.
sa1027:C:\src\Widget.cs:3 - Tabs must not be used.
not a violation line
SA0102:Widget.cs:40 - A syntax error has been discovered in file Widget.cs.
`)

	got := analyzer.ParseText(out)
	assert.Equal(t, []analyzer.Finding{
		{Rule: rules.ElementsDocumented, Source: "Widget.cs", Line: 12, Message: "The method must have a documentation header."},
		{Rule: rules.TabsMustNotBeUsed, Source: `C:\src\Widget.cs`, Line: 3, Message: "Tabs must not be used."},
		{Rule: rules.CompileFailed, Source: "Widget.cs", Line: 40, Message: "A syntax error has been discovered in file Widget.cs."},
	}, got)
}

func TestParseText_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, analyzer.ParseText(nil))
}

func TestParseSARIF(t *testing.T) {
	t.Parallel()

	data := []byte(`{
  "version": "2.1.0",
  "runs": [{
    "results": [
      {
        "ruleId": "SA1101",
        "message": {"text": "The call to value must begin with the 'this.' prefix."},
        "locations": [{"physicalLocation": {"artifactLocation": {"uri": "src/Widget.cs"}, "region": {"startLine": 7}}}]
      },
      {
        "ruleId": "SA1633",
        "message": {"text": "The file has no header."},
        "locations": []
      }
    ]
  }]
}`)

	got, err := analyzer.ParseSARIF(data)
	require.NoError(t, err)
	assert.Equal(t, []analyzer.Finding{{
		Rule:    rules.PrefixLocalCalls,
		Source:  "src/Widget.cs",
		Line:    7,
		Message: "The call to value must begin with the 'this.' prefix.",
	}}, got)

	_, err = analyzer.ParseSARIF([]byte("{"))
	require.ErrorIs(t, err, analyzer.ErrMalformedOutput)
}

func TestParseXML(t *testing.T) {
	t.Parallel()

	data := []byte(`<StyleCopViolations>
  <Violation Section="Root.Widget" LineNumber="5" Source="Widget.cs" RuleNamespace="StyleCop.CSharp.LayoutRules" Rule="ClosingCurlyBracketMustBeFollowedByBlankLine" RuleId="SA1513">
    Closing curly bracket must be followed by blank line.
  </Violation>
</StyleCopViolations>`)

	got, err := analyzer.ParseXML(data)
	require.NoError(t, err)
	assert.Equal(t, []analyzer.Finding{{
		Rule:    rules.ClosingBraceNeedsBlank,
		Source:  "Widget.cs",
		Line:    5,
		Message: "Closing curly bracket must be followed by blank line.",
	}}, got)

	_, err = analyzer.ParseXML([]byte("<nope"))
	require.ErrorIs(t, err, analyzer.ErrMalformedOutput)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]analyzer.Format{
		"":      analyzer.FormatText,
		"TEXT":  analyzer.FormatText,
		"sarif": analyzer.FormatSARIF,
		" xml ": analyzer.FormatXML,
	} {
		got, err := analyzer.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := analyzer.ParseFormat("csv")
	require.ErrorIs(t, err, analyzer.ErrUnknownFormat)

	_, err = analyzer.Parse("csv", nil)
	require.ErrorIs(t, err, analyzer.ErrUnknownFormat)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte(
		"SA1027:A.cs:1 - Tabs must not be used.\nSA1027:B.cs:2 - Tabs must not be used.\n"), 0o600))

	static, err := analyzer.Load(path, analyzer.FormatText)
	require.NoError(t, err)

	got, err := static.Analyze(context.Background(), "", filepath.Join("src", "A.cs"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)

	_, err = analyzer.Load(filepath.Join(t.TempDir(), "absent"), analyzer.FormatText)
	require.Error(t, err)
}
