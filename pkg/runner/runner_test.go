package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/langdetect"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/runner"
	"github.com/yaklabco/stylefix/pkg/store"
)

const tabbed = "namespace Acme\n{\n\tclass A {}\n}\n"

// tabAnalyzer reports SA1027 on every line starting with a tab.
type tabAnalyzer struct {
	calls    atomic.Int32
	projects chan string
}

func (a *tabAnalyzer) Analyze(_ context.Context, project, file string) ([]analyzer.Finding, error) {
	a.calls.Add(1)
	if a.projects != nil {
		a.projects <- project
	}

	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var out []analyzer.Finding
	for i, line := range splitLines(string(content)) {
		if len(line) > 0 && line[0] == '\t' {
			out = append(out, analyzer.Finding{Rule: rules.TabsMustNotBeUsed, Line: i + 1, Message: "Tabs must not be used."})
		}
	}
	return out, nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func newOptions(dir string, a analyzer.Analyzer) runner.Options {
	s := store.New()
	return runner.Options{
		WorkingDir: dir,
		Request:    engine.Request{ProjectPath: "proj"},
		Pipeline:   engine.DefaultPipelineOptions(),
		NewFixer: func() *engine.Fixer {
			return engine.New(engine.Options{Analyzer: a, Store: s})
		},
	}
}

func TestRunner_Run_RequiresFixer(t *testing.T) {
	t.Parallel()

	_, err := runner.New().Run(context.Background(), runner.Options{})
	require.ErrorIs(t, err, runner.ErrNoFixer)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	res, err := runner.New().Run(context.Background(), newOptions(t.TempDir(), &tabAnalyzer{}))
	require.NoError(t, err)
	assert.Zero(t, res.Stats.FilesDiscovered)
	assert.Empty(t, res.Files)
}

func TestRunner_Run_ReportOnly(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"B.cs":             tabbed,
		"A.cs":             "namespace Acme\n{\n}\n",
		"sub/C.cs":         tabbed,
		"Main.Designer.cs": "// <auto-generated />\nnamespace Acme {}\n",
	})

	res, err := runner.New().Run(context.Background(), newOptions(dir, &tabAnalyzer{}))
	require.NoError(t, err)

	require.Len(t, res.Files, 4)
	assert.Equal(t, []string{"A.cs", "B.cs", "Main.Designer.cs", "sub/C.cs"}, rel(t, dir, paths(res)))

	assert.Equal(t, 4, res.Stats.FilesDiscovered)
	assert.Equal(t, 3, res.Stats.FilesProcessed)
	assert.Equal(t, 1, res.Stats.FilesIgnored)
	assert.Equal(t, 2, res.Stats.FilesChanged)
	assert.Zero(t, res.Stats.FilesModified)
	assert.Equal(t, 2, res.Stats.ViolationsTotal)
	assert.Equal(t, 2, res.Stats.ViolationsCorrected)
	assert.False(t, res.HasRemaining())
	assert.False(t, res.HasErrors())

	assert.Equal(t, langdetect.Generated, res.Files[2].Verdict)
	assert.True(t, res.Files[2].Ignored())

	got, _ := os.ReadFile(filepath.Join(dir, "B.cs"))
	assert.Equal(t, tabbed, string(got), "report-only run leaves files alone")
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"A.cs": tabbed, "B.cs": tabbed})
	opts := newOptions(dir, &tabAnalyzer{})
	opts.Pipeline.Write = true
	opts.Jobs = 1

	res, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.FilesModified)

	got, _ := os.ReadFile(filepath.Join(dir, "A.cs"))
	assert.Equal(t, "namespace Acme\n{\n    class A {}\n}\n", string(got))
}

func TestRunner_Run_CompileErrorIsPerFile(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"A.cs": tabbed, "B.cs": tabbed})
	broken := filepath.Join(dir, "B.cs")

	opts := newOptions(dir, analyzer.Static{
		broken: {{Rule: rules.CompileFailed, Line: 1, Message: "does not compile"}},
		"":     {{Rule: rules.TabsMustNotBeUsed, Line: 3, Message: "Tabs must not be used."}},
	})

	res, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.FilesErrored)
	assert.Equal(t, 1, res.Stats.CompileErrors)
	assert.Equal(t, 1, res.Stats.FilesProcessed)
	require.ErrorIs(t, res.Files[1].Error, engine.ErrCompileError)
	assert.True(t, res.HasErrors())
}

func TestRunner_Run_AutoProject(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"App/App.csproj": "", "App/A.cs": tabbed})
	a := &tabAnalyzer{projects: make(chan string, 1)}

	opts := newOptions(dir, a)
	opts.Request.ProjectPath = ""
	opts.AutoProject = true

	res, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	want := filepath.Join(dir, "App", "App.csproj")
	assert.Equal(t, want, res.Files[0].ProjectPath)
	assert.Equal(t, want, <-a.projects)
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".cs"] = tabbed
	}
	dir := tree(t, files)

	serial := newOptions(dir, &tabAnalyzer{})
	serial.Jobs = 1
	parallel := newOptions(dir, &tabAnalyzer{})
	parallel.Jobs = 4

	r1, err := runner.New().Run(context.Background(), serial)
	require.NoError(t, err)
	r2, err := runner.New().Run(context.Background(), parallel)
	require.NoError(t, err)

	assert.Equal(t, paths(r1), paths(r2))
	assert.Equal(t, r1.Stats, r2.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"A.cs": tabbed})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, newOptions(dir, &tabAnalyzer{}))
	require.ErrorIs(t, err, context.Canceled)
}

func paths(res *runner.Result) []string {
	out := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		out = append(out, f.Path)
	}
	return out
}
