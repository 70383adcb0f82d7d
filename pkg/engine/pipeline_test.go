package engine_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/store"
)

func TestProcess_DryRun(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "Widget.cs", widget)
	f := newFixer(store.New(), widgetFindings...)

	opts := engine.DefaultPipelineOptions()
	opts.DryRun = true
	out, err := f.Process(context.Background(), engine.Request{ProjectPath: ".", FilePath: path}, opts)
	require.NoError(t, err)

	require.True(t, out.Diff.HasChanges())
	assert.Equal(t, 1, out.Diff.Added)
	assert.False(t, out.Written)
	assert.Equal(t, "changes pending", out.Status())

	got, _ := os.ReadFile(path)
	assert.Equal(t, widget, string(got), "dry run leaves the file alone")
}

func TestProcess_WriteWithBackup(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "Widget.cs", "\xEF\xBB\xBF"+widget)
	f := newFixer(store.New(), widgetFindings...)

	opts := engine.DefaultPipelineOptions()
	opts.Write = true
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	out, err := f.Process(context.Background(), engine.Request{ProjectPath: ".", FilePath: path}, opts)
	require.NoError(t, err)
	assert.True(t, out.Written)
	assert.True(t, out.BackupCreated)
	assert.Equal(t, "fixed", out.Status())

	got, _ := os.ReadFile(path)
	assert.Equal(t, "\xEF\xBB\xBFclass Widget\n{\n    int x = 5;\n}\n", string(got))

	backup, _ := os.ReadFile(path + fsutil.BackupSuffix)
	assert.Equal(t, "\xEF\xBB\xBF"+widget, string(backup))
}

func TestProcess_ReportOnly(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "Widget.cs", widget)
	f := newFixer(store.New(), widgetFindings...)

	out, err := f.Process(context.Background(), engine.Request{ProjectPath: ".", FilePath: path}, engine.DefaultPipelineOptions())
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.False(t, out.Written)
	assert.Nil(t, out.Diff)
}

func TestProcess_Missing(t *testing.T) {
	t.Parallel()

	f := newFixer(store.New())
	out, err := f.Process(context.Background(), engine.Request{FilePath: "/nonexistent/A.cs"}, engine.DefaultPipelineOptions())
	require.NoError(t, err)
	assert.Equal(t, "missing", out.Status())
}
