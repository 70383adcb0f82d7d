package configloader

import (
	"maps"

	"github.com/yaklabco/stylefix/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	mergeString(&result.Company, override.Company)
	mergeString(&result.Author, override.Author)
	mergeString(&result.DefaultModifier, override.DefaultModifier)
	mergeString(&result.Project, override.Project)
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans can only be switched on by a higher layer, since false is
	// the zero value.
	result.ForceFix = result.ForceFix || override.ForceFix
	result.Fix = result.Fix || override.Fix
	result.DryRun = result.DryRun || override.DryRun
	result.NoBackups = result.NoBackups || override.NoBackups
	result.Backups.Enabled = result.Backups.Enabled || override.Backups.Enabled
	mergeString(&result.Backups.Mode, override.Backups.Mode)

	mergeString(&result.Analyzer.Command, override.Analyzer.Command)
	mergeString(&result.Analyzer.Format, override.Analyzer.Format)
	mergeString(&result.Analyzer.Timeout, override.Analyzer.Timeout)
	mergeSlice(&result.Analyzer.Args, override.Analyzer.Args)

	mergeString(&result.Arrange.Command, override.Arrange.Command)
	mergeString(&result.Arrange.Timeout, override.Arrange.Timeout)
	mergeSlice(&result.Arrange.Args, override.Arrange.Args)

	mergeString(&result.Store.Snapshot, override.Store.Snapshot)

	result.Rules = mergeRules(base.Rules, override.Rules)

	mergeSlice(&result.Ignore, override.Ignore)
	mergeSlice(&result.EnableRules, override.EnableRules)
	mergeSlice(&result.DisableRules, override.DisableRules)

	return &result
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

func mergeSlice(dst *[]string, override []string) {
	if override != nil {
		*dst = override
	}
}

// mergeRules merges rule switches; override's values take precedence.
func mergeRules(base, override map[string]bool) map[string]bool {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]bool, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
