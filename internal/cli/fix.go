package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/analysis"
	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/reporter"
	"github.com/yaklabco/stylefix/pkg/runner"
	"github.com/yaklabco/stylefix/pkg/store"
)

type fixFlags struct {
	format           string
	ignore           []string
	enable           []string
	disable          []string
	violations       string
	violationsFormat string
	renames          bool
	showFixed        bool
	compact          bool
	noSummary        bool
	summaryOrder     string
	sortBy           string
}

func newFixCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix StyleCop violations in C# files",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags, info)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Fix StyleCop violations in C# files.

The analyzer configured under "analyzer" reports the violations of each
file; stylefix then rewrites the lines it can fix and reports the rest.
Without --fix nothing is written. Files that do not compile are left
alone unless --force is given.

Examples:
  stylefix fix --project App.csproj          # Report what would be fixed
  stylefix fix --project auto --fix src/     # Fix, finding each file's project
  stylefix fix --fix --dry-run --format diff # Show fixes as a diff
  stylefix fix --violations out.sarif --violations-format sarif --fix
  stylefix fix --format json                 # Machine-readable report`

func runFix(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fixFlags, info BuildInfo) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg.Format = config.OutputFormat(flags.format)
	cliCfg.Ignore = flags.ignore
	cliCfg.EnableRules = flags.enable
	cliCfg.DisableRules = flags.disable

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	var static analyzer.Analyzer
	if flags.violations != "" {
		vf, err := analyzer.ParseFormat(flags.violationsFormat)
		if err != nil {
			return fmt.Errorf("invalid violations format: %w", err)
		}
		loaded, err := analyzer.Load(flags.violations, vf)
		if err != nil {
			return err
		}
		static = loaded
	}

	st := store.Default()
	loadSnapshot(cfg, st, logger)
	fixerOpts, err := fixerOptions(cfg, static, st)
	if err != nil {
		return err
	}
	if fixerOpts.Analyzer == nil {
		logger.Warn("no analyzer configured; only file headers will be added")
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Request: engine.Request{
			ProjectPath: cfg.Project,
			Company:     cfg.Company,
			Author:      cfg.Author,
			ForceFix:    cfg.ForceFix,
		},
		Pipeline: pipelineOptions(cfg, format),
		NewFixer: func() *engine.Fixer { return engine.New(fixerOpts) },
	}
	if cfg.Project == config.ProjectAuto {
		runOpts.Request.ProjectPath = ""
		runOpts.AutoProject = true
	}
	// Saved findings need no project; any path enables the analysis step.
	if static != nil && runOpts.Request.ProjectPath == "" && !runOpts.AutoProject {
		runOpts.Request.ProjectPath = workDir
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, workDir,
		logging.FieldProject, cfg.Project,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	logRun(result)
	saveSnapshot(ctx, cfg, st, logger)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       format,
		Color:        colorMode,
		ShowSummary:  !flags.noSummary,
		ShowFixed:    flags.showFixed,
		Compact:      flags.compact,
		SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
		SortBy:       analysis.SortField(flags.sortBy),
		WorkingDir:   workDir,
		ToolVersion:  info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if flags.renames {
		if err := writeRenames(cmd, result); err != nil {
			return err
		}
	}

	return errorForExitCode(ExitCodeFromResult(result))
}

// pipelineOptions maps the CLI settings onto the write pipeline. The diff
// format always computes diffs, so it implies a dry run unless --fix is set.
func pipelineOptions(cfg *config.Config, format reporter.Format) engine.PipelineOptions {
	opts := engine.DefaultPipelineOptions()
	opts.Write = cfg.Fix && !cfg.DryRun
	opts.DryRun = cfg.DryRun || (format == reporter.FormatDiff && !cfg.Fix)
	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	return opts
}

func logRun(result *runner.Result) {
	logger := logging.Default()

	for _, f := range result.Files {
		switch {
		case f.Error != nil:
			logger.Debug("file failed", logging.FieldPath, f.Path, logging.FieldError, f.Error)
		case f.Ignored():
			logger.Debug("file ignored", logging.FieldPath, f.Path, logging.FieldVerdict, f.Verdict)
		case f.Outcome != nil:
			logSkips(logger, f.Outcome.Result)
			if f.Outcome.Skipped {
				logger.Warn("file not written", logging.FieldPath, f.Path, logging.FieldReason, f.Outcome.SkipReason)
			}
		}
	}

	logger.Debug("fix run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesIgnored, result.Stats.FilesIgnored,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldTotal, result.Stats.ViolationsTotal,
		logging.FieldFixed, result.Stats.ViolationsCorrected,
	)
}

// mergeRenames combines the rename maps of all files. Files are visited in
// discovery order and the first entry for an identifier wins.
func mergeRenames(files []runner.FileOutcome) map[string]string {
	merged := make(map[string]string)
	for _, f := range files {
		if f.Outcome == nil || f.Outcome.Result == nil {
			continue
		}
		for from, to := range f.Outcome.Renames {
			if _, ok := merged[from]; !ok {
				merged[from] = to
			}
		}
	}
	return merged
}

// writeRenames prints the merged rename map of all files as JSON, for a
// symbol-rename tool.
func writeRenames(cmd *cobra.Command, result *runner.Result) error {
	merged := mergeRenames(result.Files)

	type rename struct {
		From string `json:"from"`
		To   string `json:"to"`
	}
	out := make([]rename, 0, len(merged))
	for _, from := range slices.Sorted(maps.Keys(merged)) {
		out = append(out, rename{From: from, To: merged[from]})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding renames: %w", err)
	}
	return nil
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "write fixed files back to disk")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&cfg.Project, "project", "", `project or solution passed to the analyzer, or "auto"`)
	cmd.Flags().StringVar(&cfg.Company, "company", "", "company name for the copyright header")
	cmd.Flags().StringVar(&cfg.Author, "author", "", "author name for the copyright header")
	cmd.Flags().BoolVar(&cfg.ForceFix, "force", false, "fix files even when the analyzer reports a compile error")
	cmd.Flags().StringVar(&cfg.DefaultModifier, "modifier", "", "access modifier added to declarations without one")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.violations, "violations", "", "read violations from saved analyzer output instead of running the analyzer")
	cmd.Flags().StringVar(&flags.violationsFormat, "violations-format", "text", "format of --violations: text, sarif, xml")
	cmd.Flags().BoolVar(&flags.renames, "renames", false, "print the identifier rename map as JSON after the report")
	cmd.Flags().BoolVar(&flags.showFixed, "show-fixed", false, "list fixed violations as well as open ones")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json and sarif output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count", "order of rules and files in reports: count, alpha, remaining")
}
