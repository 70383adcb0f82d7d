package engine_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/arrange"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/store"
)

const widget = "class Widget\n{\n\tSystem.Int32 x = 5;\n}\n"

//nolint:gochecknoglobals // Test fixture
var widgetFindings = []analyzer.Finding{
	{Rule: rules.TabsMustNotBeUsed, Line: 3, Message: "Tabs must not be used."},
	{Rule: rules.UseBuiltInTypeAlias, Line: 3, Message: "Use the built-in type alias 'int'."},
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFixer(s *store.Store, findings ...analyzer.Finding) *engine.Fixer {
	return engine.New(engine.Options{
		Analyzer: analyzer.Static{"": findings},
		Store:    s,
	})
}

func TestFix_FullPass(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "Widget.cs", widget)
	s := store.New()
	f := newFixer(s, widgetFindings...)
	assert.Equal(t, engine.NotRun, f.State())

	res, err := f.Fix(context.Background(), engine.Request{ProjectPath: ".", FilePath: path})
	require.NoError(t, err)

	assert.Equal(t, "class Widget\n{\n    int x = 5;\n}\n", res.Text)
	assert.True(t, res.Changed)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Corrected)
	assert.Zero(t, res.Remaining())
	require.Len(t, res.Violations, 2)
	assert.True(t, res.Violations[0].Resolved)
	assert.True(t, res.Violations[1].Resolved)
	assert.Equal(t, engine.Ran, f.State())

	total, corrected := f.CalculateViolations()
	assert.Equal(t, 2, total)
	assert.Equal(t, 2, corrected)

	assert.Equal(t, []store.Summary{
		{Line: 3, Message: "SA1027: Tabs must not be used."},
		{Line: 3, Message: "SA1121: Use the built-in type alias 'int'."},
	}, f.ViolationsFor(path))
}

func TestFix_MissingFile(t *testing.T) {
	t.Parallel()

	f := newFixer(store.New())
	res, err := f.Fix(context.Background(), engine.Request{FilePath: filepath.Join(t.TempDir(), "Gone.cs")})
	require.NoError(t, err)
	assert.True(t, res.Missing)
	assert.Empty(t, res.Text)
}

func TestFix_CompileErrorGate(t *testing.T) {
	t.Parallel()

	findings := append([]analyzer.Finding{
		{Rule: rules.CompileFailed, Line: 4, Message: "The file could not be compiled."},
	}, widgetFindings...)

	f := newFixer(store.New(), findings...)
	req := engine.Request{ProjectPath: ".", FilePath: "Widget.cs"}

	res, err := f.FixContent(context.Background(), req, widget)
	require.ErrorIs(t, err, engine.ErrCompileError)
	assert.Nil(t, res)

	var compileErr *engine.CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, 4, compileErr.Line)
	assert.Equal(t, "Widget.cs", compileErr.Path)

	req.ForceFix = true
	res, err = f.FixContent(context.Background(), req, widget)
	require.NoError(t, err)
	assert.Contains(t, res.Text, "    int x = 5;")
}

func TestFix_CompileErrorGateIgnoresDisabledRule(t *testing.T) {
	t.Parallel()

	findings := append([]analyzer.Finding{
		{Rule: rules.CompileFailed, Line: 2, Message: "The file could not be compiled."},
	}, widgetFindings...)

	f := engine.New(engine.Options{
		Analyzer: analyzer.Static{"": findings},
		Store:    store.New(),
		Enabled:  func(id rules.ID) bool { return id != rules.CompileFailed },
	})

	res, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "Widget.cs"}, widget)
	require.ErrorIs(t, err, engine.ErrCompileError)
	assert.Nil(t, res)
}

func TestFix_WithoutProjectSkipsAnalysis(t *testing.T) {
	t.Parallel()

	s := store.New()
	f := newFixer(s, widgetFindings...)

	res, err := f.FixContent(context.Background(), engine.Request{FilePath: "Widget.cs"}, widget)
	require.NoError(t, err)
	assert.Equal(t, widget, res.Text, "violation-free text round-trips")
	assert.False(t, res.Changed)
	assert.Nil(t, f.ViolationsFor("Widget.cs"))
}

func TestFix_Header(t *testing.T) {
	t.Parallel()

	f := newFixer(store.New())
	req := engine.Request{FilePath: filepath.Join("src", "Widget.cs"), Company: "Acme", Author: "jdoe"}

	res, err := f.FixContent(context.Background(), req, "class Widget {}\n")
	require.NoError(t, err)
	assert.Contains(t, res.Text, `// <copyright file="Widget.cs" company="Acme" author="jdoe">`)
	assert.True(t, strings.HasSuffix(res.Text, "class Widget {}\n"))

	again, err := f.FixContent(context.Background(), req, res.Text)
	require.NoError(t, err)
	assert.Equal(t, res.Text, again.Text, "header is added once")
}

func TestFix_HeaderRuleDisabled(t *testing.T) {
	t.Parallel()

	f := engine.New(engine.Options{
		Store:   store.New(),
		Enabled: func(id rules.ID) bool { return id != rules.FileHeader },
	})

	res, err := f.FixContent(context.Background(), engine.Request{FilePath: "A.cs", Company: "Acme"}, "class A {}\n")
	require.NoError(t, err)
	assert.Equal(t, "class A {}\n", res.Text)
}

func TestFix_DisabledRuleStaysOpen(t *testing.T) {
	t.Parallel()

	f := engine.New(engine.Options{
		Analyzer: analyzer.Static{"": widgetFindings},
		Store:    store.New(),
		Enabled:  func(id rules.ID) bool { return id != rules.UseBuiltInTypeAlias },
	})

	res, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "Widget.cs"}, widget)
	require.NoError(t, err)
	assert.Equal(t, "class Widget\n{\n    System.Int32 x = 5;\n}\n", res.Text)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Corrected)
	assert.Equal(t, 1, res.Remaining())

	for _, v := range res.Violations {
		assert.Equal(t, v.Rule == rules.TabsMustNotBeUsed, v.Resolved, v.Rule)
	}
}

func TestFix_OutOfRangeFindingSkipped(t *testing.T) {
	t.Parallel()

	f := newFixer(store.New(), analyzer.Finding{Rule: rules.CommasSpacing, Line: 99, Message: "x"})

	res, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "A.cs"}, "a\n")
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 99, res.Skipped[0].Line)
	assert.Zero(t, res.Total)
}

type failingAnalyzer struct{}

func (failingAnalyzer) Analyze(context.Context, string, string) ([]analyzer.Finding, error) {
	return nil, errors.New("no project")
}

func TestFix_AnalyzerFailure(t *testing.T) {
	t.Parallel()

	f := engine.New(engine.Options{Analyzer: failingAnalyzer{}, Store: store.New()})
	_, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "A.cs"}, "a\n")
	require.ErrorIs(t, err, engine.ErrAnalyzer)
}

func TestFix_Formatter(t *testing.T) {
	t.Parallel()

	upper := arrange.FormatterFunc(func(_ context.Context, text string) (string, error) {
		return strings.ToUpper(text), nil
	})
	f := engine.New(engine.Options{Formatter: upper, Store: store.New()})

	res, err := f.FixContent(context.Background(), engine.Request{FilePath: "A.cs"}, "class a {}\n")
	require.NoError(t, err)
	assert.Equal(t, "CLASS A {}\n", res.Text)
	assert.NoError(t, res.FormatError)
}

func TestFix_FormatterFailureKeepsText(t *testing.T) {
	t.Parallel()

	broken := arrange.FormatterFunc(func(context.Context, string) (string, error) {
		return "", arrange.ErrEmptyOutput
	})
	f := engine.New(engine.Options{
		Analyzer:  analyzer.Static{"": widgetFindings},
		Formatter: broken,
		Store:     store.New(),
	})

	res, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "Widget.cs"}, widget)
	require.NoError(t, err)
	require.ErrorIs(t, res.FormatError, arrange.ErrEmptyOutput)
	assert.Equal(t, "class Widget\n{\n    int x = 5;\n}\n", res.Text)
}

func TestFix_Renames(t *testing.T) {
	t.Parallel()

	f := newFixer(store.New(), analyzer.Finding{
		Rule:    rules.ElementUpperCase,
		Line:    1,
		Message: "method names begin with an upper-case letter: doWork.",
	})

	res, err := f.FixContent(context.Background(), engine.Request{ProjectPath: ".", FilePath: "A.cs"}, "void doWork()\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"doWork": "DoWork"}, res.Renames)
	assert.Equal(t, res.Renames, f.Renames())
	assert.Equal(t, "void doWork()\n", res.Text)
}

func TestReanalyze_ReplacesStoreOnly(t *testing.T) {
	t.Parallel()

	s := store.New()
	s.Replace("A.cs", []store.Summary{{Line: 9, Message: "SA1000: stale"}})

	f := newFixer(s, analyzer.Finding{Rule: rules.CommasSpacing, Line: 1, Message: "Commas must be spaced correctly."})
	got, err := f.Reanalyze(context.Background(), ".", "A.cs")
	require.NoError(t, err)

	assert.Equal(t, []store.Summary{{Line: 1, Message: "SA1001: Commas must be spaced correctly."}}, got)
	assert.Equal(t, engine.NotRun, f.State())
}

func TestCompileError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "compile error detected: A.cs:3", (&engine.CompileError{Path: "A.cs", Line: 3}).Error())
	assert.Equal(t, "compile error detected at line 3", (&engine.CompileError{Line: 3}).Error())
}
