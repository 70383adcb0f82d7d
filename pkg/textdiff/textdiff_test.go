package textdiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/textdiff"
)

func TestCompute_NoChange(t *testing.T) {
	t.Parallel()

	assert.Nil(t, textdiff.Compute("A.cs", "", ""))
	assert.Nil(t, textdiff.Compute("A.cs", "a\nb\n", "a\nb\n"))
	assert.Nil(t, textdiff.Compute("A.cs", "a\r\nb\r\n", "a\nb\n"), "line endings are normalized")
	assert.False(t, (*textdiff.Diff)(nil).HasChanges())
	assert.Empty(t, (*textdiff.Diff)(nil).String())
}

func TestCompute_SingleChange(t *testing.T) {
	t.Parallel()

	before := "class A\n{\n\tint x;\n}\n"
	after := "class A\n{\n    int x;\n}\n"

	d := textdiff.Compute("src/A.cs", before, after)
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)
	assert.Equal(t, "--- a/src/A.cs\n+++ b/src/A.cs\n"+
		"@@ -1,4 +1,4 @@\n"+
		" class A\n"+
		" {\n"+
		"-\tint x;\n"+
		"+    int x;\n"+
		" }\n", d.String())
}

func TestCompute_Insertion(t *testing.T) {
	t.Parallel()

	d := textdiff.Compute("A.cs", "}\nx;\n", "}\n\nx;\n")
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 0, d.Removed)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, textdiff.Hunk{
		OldStart: 1, OldCount: 2, NewStart: 1, NewCount: 3,
		Lines: []textdiff.Line{
			{Kind: textdiff.Context, Text: "}"},
			{Kind: textdiff.Added, Text: ""},
			{Kind: textdiff.Context, Text: "x;"},
		},
	}, d.Hunks[0])
}

func TestCompute_SeparateHunks(t *testing.T) {
	t.Parallel()

	var lines []string
	for range 20 {
		lines = append(lines, "same")
	}
	before := "first\n" + strings.Join(lines, "\n") + "\nlast\n"
	after := "FIRST\n" + strings.Join(lines, "\n") + "\nLAST\n"

	d := textdiff.Compute("A.cs", before, after)
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, 1, d.Hunks[0].OldStart)
	assert.Equal(t, 4, d.Hunks[0].OldCount)
	assert.Equal(t, 19, d.Hunks[1].OldStart)
	assert.Equal(t, 4, d.Hunks[1].OldCount)
}

func TestCompute_NearbyChangesMerge(t *testing.T) {
	t.Parallel()

	d := textdiff.Compute("A.cs", "a\n1\n2\n3\nb\n", "A\n1\n2\n3\nB\n")
	require.NotNil(t, d)
	assert.Len(t, d.Hunks, 1)
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 2, d.Removed)
}
