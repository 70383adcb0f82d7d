package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/runner"
)

func renamed(path string, renames map[string]string) runner.FileOutcome {
	return runner.FileOutcome{
		Path:    path,
		Outcome: &engine.Outcome{Result: &engine.Result{Path: path, Renames: renames}},
	}
}

func TestMergeRenames_FirstFileWins(t *testing.T) {
	t.Parallel()

	got := mergeRenames([]runner.FileOutcome{
		renamed("A.cs", map[string]string{"widget": "Widget"}),
		{Path: "Broken.cs"},
		renamed("B.cs", map[string]string{"widget": "WidgetB", "gadget": "Gadget"}),
	})

	assert.Equal(t, map[string]string{"widget": "Widget", "gadget": "Gadget"}, got)
}

func TestMergeRenames_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mergeRenames(nil))
}
