package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/stylefix/pkg/config"
)

func TestGenerateTemplate_YAMLParses(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: full, Company: "Acme"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err, string(data))
		assert.Equal(t, "Acme", cfg.Company)
		assert.Equal(t, config.ProjectAuto, cfg.Project)
		assert.Equal(t, "text", cfg.Analyzer.Format)
		assert.Empty(t, cfg.Author, "unset author stays commented out")

		if full {
			assert.False(t, cfg.Rules["SA1200"], "rule defaults are written")
			assert.True(t, cfg.Rules["SA1027"])
		} else {
			assert.Empty(t, cfg.Rules)
		}
	}
}

func TestGenerateTemplate_TOMLParses(t *testing.T) {
	t.Parallel()

	for _, full := range []bool{false, true} {
		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full: full, Format: config.FileFormatTOML, Author: "jdoe",
		})
		require.NoError(t, err)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err, string(data))
		assert.Equal(t, "jdoe", cfg.Author)
		assert.Equal(t, []string{"**/bin/**", "**/obj/**"}, cfg.Ignore)
		if full {
			assert.Contains(t, cfg.Rules, "SA1633")
		}
	}
}

func TestGenerateTemplate_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.Error(t, err)
}
