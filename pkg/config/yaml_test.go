package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies maps and slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Company:     "Acme",
			Rules:       map[string]bool{"SA1200": true},
			Ignore:      []string{"**/Generated/**"},
			Analyzer:    config.AnalyzerConfig{Command: "analyze", Args: []string{"{project}"}},
			EnableRules: []string{"SA1200"},
			Fix:         true,
			Jobs:        4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Rules["SA1200"] = false
		clone.Ignore[0] = "changed"
		clone.Analyzer.Args[0] = "changed"
		clone.EnableRules[0] = "changed"

		assert.True(t, original.Rules["SA1200"])
		assert.Equal(t, "**/Generated/**", original.Ignore[0])
		assert.Equal(t, "{project}", original.Analyzer.Args[0])
		assert.Equal(t, "SA1200", original.EnableRules[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("CLI fields are not written", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{Company: "Acme", ForceFix: true, Fix: true, Jobs: 3}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "company: Acme")
		assert.Contains(t, string(data), "force_fix: true")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("with header", func(t *testing.T) {
		t.Parallel()

		data, err := (&config.Config{Author: "jd"}).ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.Contains(t, string(data), "# generated\n\n")
		assert.Contains(t, string(data), "author: jd")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
company: Acme Corp
author: jdoe
default_modifier: internal
rules:
  SA1200: true
  SA1633: false
analyzer:
  command: stylecop-cli
  args: ["{project}", "{file}"]
  format: sarif
  timeout: 30s
store:
  snapshot: .stylefix/violations.msgpack
`))
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", cfg.Company)
		assert.Equal(t, "jdoe", cfg.Author)
		assert.Equal(t, "internal", cfg.DefaultModifier)
		assert.Equal(t, map[string]bool{"SA1200": true, "SA1633": false}, cfg.Rules)
		assert.Equal(t, config.AnalyzerConfig{
			Command: "stylecop-cli",
			Args:    []string{"{project}", "{file}"},
			Format:  "sarif",
			Timeout: "30s",
		}, cfg.Analyzer)
		assert.Equal(t, ".stylefix/violations.msgpack", cfg.Store.Snapshot)
	})

	t.Run("initializes empty Rules map", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`company: Acme`))
		require.NoError(t, err)
		assert.NotNil(t, cfg.Rules)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("rules: [unclosed"))
		require.Error(t, err)
	})
}

func TestFromTOML(t *testing.T) {
	t.Parallel()

	cfg, err := config.Decode(config.FileFormatTOML, []byte(`
company = "Acme Corp"
force_fix = true
ignore = ["**/Migrations/**"]

[analyzer]
command = "stylecop-cli"
timeout = "45s"

[rules]
SA1200 = true
`))
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", cfg.Company)
	assert.True(t, cfg.ForceFix)
	assert.Equal(t, []string{"**/Migrations/**"}, cfg.Ignore)
	assert.Equal(t, "stylecop-cli", cfg.Analyzer.Command)
	assert.True(t, cfg.Rules["SA1200"])

	timeout, err := cfg.AnalyzerTimeout()
	require.NoError(t, err)
	assert.Equal(t, "45s", timeout.String())
}

func TestFromTOML_UnknownKey(t *testing.T) {
	t.Parallel()

	_, err := config.FromTOML([]byte(`flavor = "gfm"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flavor")
}

func TestToTOML_RoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Company = "Acme"
	original.Rules["SA1200"] = true

	data, err := original.ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, "Acme", parsed.Company)
	assert.Equal(t, original.Analyzer, parsed.Analyzer)
	assert.True(t, parsed.Rules["SA1200"])
}
