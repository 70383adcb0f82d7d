// Package config defines core configuration types for stylefix.
// These types are pure data structures with no dependency on a config loader.
package config

import (
	"fmt"
	"time"
)

// ProjectAuto asks the runner to find the nearest project file of each
// source file.
const ProjectAuto = "auto"

// Default timeouts of the external commands.
const (
	DefaultAnalyzerTimeout = "2m"
	DefaultArrangeTimeout  = "7s"
)

// AnalyzerConfig configures the external style analyzer.
type AnalyzerConfig struct {
	// Command is the analyzer executable. Empty disables analysis.
	Command string `mapstructure:"command" yaml:"command" toml:"command"`

	// Args may use the {project}, {file} and {dir} placeholders.
	Args []string `mapstructure:"args" yaml:"args" toml:"args"`

	// Format is the analyzer output format: text, sarif or xml.
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// Timeout is a Go duration string such as "90s".
	Timeout string `mapstructure:"timeout" yaml:"timeout" toml:"timeout"`
}

// ArrangeConfig configures the external member-arrange formatter.
type ArrangeConfig struct {
	// Command is the formatter executable. Empty skips the step.
	Command string   `mapstructure:"command" yaml:"command" toml:"command"`
	Args    []string `mapstructure:"args" yaml:"args" toml:"args"`
	Timeout string   `mapstructure:"timeout" yaml:"timeout" toml:"timeout"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode" toml:"mode"` // "sidecar" or "none"
}

// StoreConfig controls the violation store.
type StoreConfig struct {
	// Snapshot is a file the store is saved to after each run, for editor
	// integrations. Empty disables snapshots.
	Snapshot string `mapstructure:"snapshot" yaml:"snapshot" toml:"snapshot"`
}

// Config is the root configuration structure for stylefix.
type Config struct {
	// Company and Author fill the copyright header. No header is written
	// when Company is empty.
	Company string `mapstructure:"company" yaml:"company" toml:"company"`
	Author  string `mapstructure:"author" yaml:"author" toml:"author"`

	// ForceFix runs the fixes even when the analyzer reports a compile error.
	ForceFix bool `mapstructure:"force_fix" yaml:"force_fix" toml:"force_fix"`

	// DefaultModifier is the access modifier added for SA1400.
	DefaultModifier string `mapstructure:"default_modifier" yaml:"default_modifier" toml:"default_modifier"`

	// Project is the project or solution passed to the analyzer, or
	// ProjectAuto.
	Project string `mapstructure:"project" yaml:"project" toml:"project"`

	// Rules enables or disables rules by ID. Rules not listed keep their
	// default.
	Rules map[string]bool `mapstructure:"rules" yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore" toml:"ignore"`

	Analyzer AnalyzerConfig `mapstructure:"analyzer" yaml:"analyzer" toml:"analyzer"`
	Arrange  ArrangeConfig  `mapstructure:"arrange" yaml:"arrange" toml:"arrange"`
	Backups  BackupsConfig  `mapstructure:"backups" yaml:"backups" toml:"backups"`
	Store    StoreConfig    `mapstructure:"store" yaml:"store" toml:"store"`

	// CLI-level options (not persisted to config files).

	// Fix writes the fixed text back to disk.
	Fix bool `mapstructure:"-" yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `mapstructure:"-" yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" toml:"-"`

	// EnableRules and DisableRules override Rules.
	EnableRules  []string `mapstructure:"-" yaml:"-" toml:"-"`
	DisableRules []string `mapstructure:"-" yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		DefaultModifier: "private",
		Rules:           make(map[string]bool),
		Analyzer: AnalyzerConfig{
			Format:  "text",
			Timeout: DefaultAnalyzerTimeout,
		},
		Arrange: ArrangeConfig{
			Timeout: DefaultArrangeTimeout,
		},
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// RuleEnabled reports whether the rule with the given ID may be fixed.
// DisableRules wins over EnableRules, which wins over Rules.
func (c *Config) RuleEnabled(id string, defaultEnabled bool) bool {
	if c == nil {
		return defaultEnabled
	}
	for _, d := range c.DisableRules {
		if d == id {
			return false
		}
	}
	for _, e := range c.EnableRules {
		if e == id {
			return true
		}
	}
	if enabled, ok := c.Rules[id]; ok {
		return enabled
	}
	return defaultEnabled
}

// AnalyzerTimeout parses Analyzer.Timeout. Empty means zero, the command's
// own default.
func (c *Config) AnalyzerTimeout() (time.Duration, error) {
	return parseTimeout("analyzer.timeout", c.Analyzer.Timeout)
}

// ArrangeTimeout parses Arrange.Timeout.
func (c *Config) ArrangeTimeout() (time.Duration, error) {
	return parseTimeout("arrange.timeout", c.Arrange.Timeout)
}

func parseTimeout(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %q", field, value)
	}
	return d, nil
}
