package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/stylefix/pkg/config"
)

// envVarPrefix is the prefix for all stylefix environment variables.
const envVarPrefix = "STYLEFIX_"

// envMapping binds one environment variable to a config field.
type envMapping struct {
	field string
	help  string
	set   func(cfg *config.Config, value string) error
}

func envString(field, help string, target func(*config.Config) *string) envMapping {
	return envMapping{field, help, func(cfg *config.Config, value string) error {
		*target(cfg) = value
		return nil
	}}
}

func envBool(field, help string, target func(*config.Config) *bool) envMapping {
	return envMapping{field, help, func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*target(cfg) = b
		return nil
	}}
}

func envInt(field, help string, target func(*config.Config) *int) envMapping {
	return envMapping{field, help, func(cfg *config.Config, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*target(cfg) = i
		return nil
	}}
}

func envList(field, help string, target func(*config.Config) *[]string) envMapping {
	return envMapping{field, help, func(cfg *config.Config, value string) error {
		*target(cfg) = splitList(value)
		return nil
	}}
}

// envMappings maps variable names, without the prefix, to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"COMPANY": envString("company", "Company named in the copyright header",
		func(c *config.Config) *string { return &c.Company }),
	"AUTHOR": envString("author", "Author named in the copyright header",
		func(c *config.Config) *string { return &c.Author }),
	"FORCE_FIX": envBool("force_fix", "Fix files that do not compile: true or false",
		func(c *config.Config) *bool { return &c.ForceFix }),
	"DEFAULT_MODIFIER": envString("default_modifier", "Access modifier added for SA1400",
		func(c *config.Config) *string { return &c.DefaultModifier }),
	"PROJECT": envString("project", "Project or solution passed to the analyzer, or auto",
		func(c *config.Config) *string { return &c.Project }),
	"FIX": envBool("fix", "Write fixes: true or false",
		func(c *config.Config) *bool { return &c.Fix }),
	"DRY_RUN": envBool("dry_run", "Dry-run mode: true or false",
		func(c *config.Config) *bool { return &c.DryRun }),
	"JOBS": envInt("jobs", "Number of parallel workers (0 = auto)",
		func(c *config.Config) *int { return &c.Jobs }),
	"FORMAT": {"format", "Output format: text, table, json, sarif, diff or summary",
		func(c *config.Config, v string) error { c.Format = config.OutputFormat(v); return nil }},
	"ANALYZER_COMMAND": envString("analyzer.command", "Analyzer executable",
		func(c *config.Config) *string { return &c.Analyzer.Command }),
	"ANALYZER_ARGS": envList("analyzer.args", "Comma-separated analyzer arguments",
		func(c *config.Config) *[]string { return &c.Analyzer.Args }),
	"ANALYZER_FORMAT": envString("analyzer.format", "Analyzer output format: text, sarif or xml",
		func(c *config.Config) *string { return &c.Analyzer.Format }),
	"ANALYZER_TIMEOUT": envString("analyzer.timeout", "Analyzer timeout, e.g. 90s",
		func(c *config.Config) *string { return &c.Analyzer.Timeout }),
	"ARRANGE_COMMAND": envString("arrange.command", "Arrange formatter executable",
		func(c *config.Config) *string { return &c.Arrange.Command }),
	"ARRANGE_TIMEOUT": envString("arrange.timeout", "Arrange formatter timeout, e.g. 7s",
		func(c *config.Config) *string { return &c.Arrange.Timeout }),
	"BACKUPS_ENABLED": envBool("backups.enabled", "Enable backups when fixing: true or false",
		func(c *config.Config) *bool { return &c.Backups.Enabled }),
	"BACKUPS_MODE": envString("backups.mode", "Backup mode: sidecar or none",
		func(c *config.Config) *string { return &c.Backups.Mode }),
	"STORE_SNAPSHOT": envString("store.snapshot", "Path of the violation snapshot",
		func(c *config.Config) *string { return &c.Store.Snapshot }),
	"IGNORE": envList("ignore", "Comma-separated list of ignore patterns",
		func(c *config.Config) *[]string { return &c.Ignore }),
	"ENABLE_RULES": envList("enable_rules", "Comma-separated rule IDs or names to enable",
		func(c *config.Config) *[]string { return &c.EnableRules }),
	"DISABLE_RULES": envList("disable_rules", "Comma-separated rule IDs or names to disable",
		func(c *config.Config) *[]string { return &c.DisableRules }),
	"NO_BACKUPS": envBool("no_backups", "Disable backups: true or false",
		func(c *config.Config) *bool { return &c.NoBackups }),
}

// LoadFromEnv applies STYLEFIX_* overrides to cfg. Unset and empty
// variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedKeys(envMappings) {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank elements.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}
