package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/configloader"
	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/arrange"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/rules"
	"github.com/yaklabco/stylefix/pkg/store"
)

// commandContext returns the command's context, or Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig merges the configuration layers with the flags in cliCfg and
// returns the result and the working directory.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return nil, "", err
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	if cfg.Store.Snapshot != "" && !filepath.IsAbs(cfg.Store.Snapshot) {
		cfg.Store.Snapshot = filepath.Join(workDir, cfg.Store.Snapshot)
	}

	return cfg, workDir, nil
}

// workingDir returns the --chdir directory, or the process working
// directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("chdir")
	if err != nil || dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve --chdir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("--chdir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("--chdir: %s is not a directory", dir)
	}
	return abs, nil
}

// newAnalyzer returns the configured analyzer command, or nil when none is
// configured.
func newAnalyzer(cfg *config.Config) (analyzer.Analyzer, error) {
	if cfg.Analyzer.Command == "" {
		return nil, nil
	}

	format, err := analyzer.ParseFormat(cfg.Analyzer.Format)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.AnalyzerTimeout()
	if err != nil {
		return nil, err
	}

	return &analyzer.Command{
		Name:    cfg.Analyzer.Command,
		Args:    cfg.Analyzer.Args,
		Format:  format,
		Timeout: timeout,
	}, nil
}

// newFormatter returns the configured arrange command, or nil.
func newFormatter(cfg *config.Config) (arrange.Formatter, error) {
	if cfg.Arrange.Command == "" {
		return nil, nil
	}

	timeout, err := cfg.ArrangeTimeout()
	if err != nil {
		return nil, err
	}

	return &arrange.Command{
		Name:    cfg.Arrange.Command,
		Args:    cfg.Arrange.Args,
		Timeout: timeout,
	}, nil
}

// ruleFilter applies the rule settings of cfg on top of the registry
// defaults.
func ruleFilter(cfg *config.Config) func(rules.ID) bool {
	return func(id rules.ID) bool {
		defaultEnabled := true
		if info, ok := rules.DefaultRegistry.GetByID(id); ok {
			defaultEnabled = info.DefaultEnabled
		}
		return cfg.RuleEnabled(string(id), defaultEnabled)
	}
}

// fixerOptions builds the engine options for cfg. A non-nil static analyzer
// replaces the configured command.
func fixerOptions(cfg *config.Config, static analyzer.Analyzer, st *store.Store) (engine.Options, error) {
	an := static
	if an == nil {
		cmdAnalyzer, err := newAnalyzer(cfg)
		if err != nil {
			return engine.Options{}, err
		}
		an = cmdAnalyzer
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return engine.Options{}, err
	}

	return engine.Options{
		Analyzer:  an,
		Formatter: formatter,
		Store:     st,
		Modifier:  cfg.DefaultModifier,
		Enabled:   ruleFilter(cfg),
	}, nil
}

// loadSnapshot fills st from the configured snapshot file so a run only
// replaces the entries of the files it analyzes.
func loadSnapshot(cfg *config.Config, st *store.Store, logger *log.Logger) {
	if cfg.Store.Snapshot == "" {
		return
	}
	if err := st.Load(cfg.Store.Snapshot); err != nil {
		logger.Warn("ignoring unreadable violation snapshot",
			logging.FieldPath, cfg.Store.Snapshot,
			logging.FieldError, err,
		)
	}
}

// saveSnapshot writes the store to the configured snapshot file.
func saveSnapshot(ctx context.Context, cfg *config.Config, st *store.Store, logger *log.Logger) {
	if cfg.Store.Snapshot == "" {
		return
	}
	if err := st.Save(ctx, cfg.Store.Snapshot); err != nil {
		logger.Warn("failed to save violation snapshot",
			logging.FieldPath, cfg.Store.Snapshot,
			logging.FieldError, err,
		)
		return
	}
	logger.Debug("saved violation snapshot", logging.FieldPath, cfg.Store.Snapshot)
}

// logSkips reports the fixes a pass did not apply at debug level.
func logSkips(logger *log.Logger, res *engine.Result) {
	if res == nil {
		return
	}
	for _, s := range res.Skipped {
		logger.Debug("fix skipped",
			logging.FieldPath, res.Path,
			logging.FieldRule, s.Rule,
			logging.FieldLine, s.Line,
			logging.FieldReason, s.Reason,
		)
	}
	if res.FormatError != nil {
		logger.Warn("arrange failed; keeping fixed text",
			logging.FieldPath, res.Path,
			logging.FieldError, res.FormatError,
		)
	}
}
