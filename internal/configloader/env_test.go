package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/stylefix/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STYLEFIX_COMPANY", "Acme")
	t.Setenv("STYLEFIX_FORCE_FIX", "true")
	t.Setenv("STYLEFIX_JOBS", "3")
	t.Setenv("STYLEFIX_IGNORE", " **/Generated/** , ,**/Migrations/**")
	t.Setenv("STYLEFIX_ANALYZER_FORMAT", "xml")
	t.Setenv("STYLEFIX_DISABLE_RULES", "SA1027")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Company != "Acme" {
		t.Errorf("company = %q", cfg.Company)
	}
	if !cfg.ForceFix {
		t.Error("expected force_fix")
	}
	if cfg.Jobs != 3 {
		t.Errorf("jobs = %d", cfg.Jobs)
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[0] != "**/Generated/**" || cfg.Ignore[1] != "**/Migrations/**" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if cfg.Analyzer.Format != "xml" {
		t.Errorf("analyzer.format = %q", cfg.Analyzer.Format)
	}
	if cfg.RuleEnabled("SA1027", true) {
		t.Error("expected SA1027 disabled")
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	t.Setenv("STYLEFIX_JOBS", "many")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "STYLEFIX_JOBS") {
		t.Fatalf("expected error naming STYLEFIX_JOBS, got %v", err)
	}
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("STYLEFIX_DRY_RUN", "maybe")

	if err := LoadFromEnv(config.NewConfig()); err == nil {
		t.Fatal("expected error for invalid boolean")
	}
}

func TestEnvMappingsAcceptNumericValue(t *testing.T) {
	t.Parallel()

	// "1" is a valid value for every field kind.
	cfg := config.NewConfig()
	for suffix, mapping := range envMappings {
		if err := mapping.set(cfg, "1"); err != nil {
			t.Errorf("%s: %v", suffix, err)
		}
	}
	if !cfg.ForceFix || cfg.Jobs != 1 || cfg.Company != "1" || len(cfg.Ignore) != 1 {
		t.Errorf("mappings did not reach their fields: %+v", cfg)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{" a , ,b ", 2},
		{",,,", 0},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); len(got) != tt.want {
			t.Errorf("splitList(%q) = %v, want %d elements", tt.in, got, tt.want)
		}
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if len(vars) != len(envMappings) {
		t.Fatalf("expected %d variables, got %d", len(envMappings), len(vars))
	}
	if vars["STYLEFIX_COMPANY"] == "" {
		t.Error("expected a description for STYLEFIX_COMPANY")
	}
	if GetEnvVarName("store.snapshot") != "STYLEFIX_STORE_SNAPSHOT" {
		t.Errorf("GetEnvVarName(store.snapshot) = %q", GetEnvVarName("store.snapshot"))
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := &config.Config{
		Company:  "Base",
		Rules:    map[string]bool{"SA1027": true, "SA1200": false},
		Ignore:   []string{"a"},
		Analyzer: config.AnalyzerConfig{Command: "analyze", Args: []string{"{file}"}},
	}
	override := &config.Config{
		Author:   "jdoe",
		Rules:    map[string]bool{"SA1200": true},
		Analyzer: config.AnalyzerConfig{Format: "sarif"},
	}

	got := MergeAll(base, override, nil)

	if got.Company != "Base" || got.Author != "jdoe" {
		t.Errorf("scalars not merged: %+v", got)
	}
	if !got.Rules["SA1027"] || !got.Rules["SA1200"] {
		t.Errorf("rules not merged: %v", got.Rules)
	}
	if got.Analyzer.Command != "analyze" || got.Analyzer.Format != "sarif" || len(got.Analyzer.Args) != 1 {
		t.Errorf("analyzer not merged: %+v", got.Analyzer)
	}
	if len(got.Ignore) != 1 {
		t.Errorf("nil slice must not clear base: %v", got.Ignore)
	}
	if base.Rules["SA1200"] {
		t.Error("merge mutated the base rules")
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}
