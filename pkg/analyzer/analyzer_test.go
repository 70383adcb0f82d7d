package analyzer_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/rules"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	s := analyzer.Static{
		"a.cs": {{Rule: rules.CommasSpacing, Line: 1}},
		"":     {{Rule: rules.TabsMustNotBeUsed, Source: "b.cs", Line: 2}, {Rule: rules.EmptyComment, Line: 3}},
	}

	got, err := s.Analyze(context.Background(), "", "a.cs")
	require.NoError(t, err)
	assert.Equal(t, []analyzer.Finding{{Rule: rules.CommasSpacing, Line: 1}}, got)

	got, err = s.Analyze(context.Background(), "", "dir/b.cs")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Analyze(context.Background(), "", "c.cs")
	require.NoError(t, err)
	assert.Equal(t, []analyzer.Finding{{Rule: rules.EmptyComment, Line: 3}}, got)
}

func TestFinding_Summary(t *testing.T) {
	t.Parallel()

	f := analyzer.Finding{Rule: rules.ElementsDocumented, Message: "The class must have a documentation header."}
	assert.Equal(t, "SA1600: The class must have a documentation header.", f.Summary())
}

func requireShell(t *testing.T) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestCommand_Analyze(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "Widget.cs")

	cmd := &analyzer.Command{
		Name: sh,
		Args: []string{"-c", `echo "SA1027:$(basename "$1"):4 - Tabs must not be used."; echo "SA1027:Other.cs:9 - x"; exit 1`, "sh", "{file}"},
	}

	got, err := cmd.Analyze(context.Background(), dir, file)
	require.NoError(t, err, "a non-zero exit with output is a normal analyzer run")
	assert.Equal(t, []analyzer.Finding{{
		Rule:    rules.TabsMustNotBeUsed,
		Source:  "Widget.cs",
		Line:    4,
		Message: "Tabs must not be used.",
	}}, got)
}

func TestCommand_FailureWithoutOutput(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	cmd := &analyzer.Command{Name: sh, Args: []string{"-c", "echo boom >&2; exit 3", "sh", "{file}"}}
	_, err := cmd.Analyze(context.Background(), t.TempDir(), "x.cs")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestCommand_Timeout(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	cmd := &analyzer.Command{Name: sh, Args: []string{"-c", "sleep 5", "sh", "{file}"}, Timeout: 50 * time.Millisecond}
	_, err := cmd.Analyze(context.Background(), t.TempDir(), "x.cs")
	require.Error(t, err)
}

func TestCommand_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := (&analyzer.Command{}).Analyze(context.Background(), "", "x.cs")
	require.ErrorIs(t, err, analyzer.ErrNoCommand)
}
