package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, render := range []func(...string) string{
		styles.Bold.Render,
		styles.Open.Render,
		styles.Fixed.Render,
		styles.Error.Render,
		styles.DiffAdd.Render,
		styles.TableOpenRow.Render,
	} {
		assert.Equal(t, "test", render("test"), "no-color styles leave text unchanged")
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss may drop ANSI codes in a non-TTY environment, so only check
	// that rendering keeps the text.
	assert.Contains(t, styles.Open.Render("x"), "x")
	assert.Contains(t, styles.Fixed.Render("x"), "x")
	assert.Contains(t, styles.Reason.Render("x"), "x")
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}

func TestNewStyles_DiffKeepsTabs(t *testing.T) {
	for _, color := range []bool{false, true} {
		styles := pretty.NewStyles(color)
		assert.Contains(t, styles.DiffRemove.Render("-\tint x;"), "\tint x;")
	}
}
