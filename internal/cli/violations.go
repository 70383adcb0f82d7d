package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/analyzer"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/runner"
	"github.com/yaklabco/stylefix/pkg/store"
)

var (
	errNoSnapshot = errors.New("no snapshot configured; set store.snapshot")
	errNoAnalyzer = errors.New("no analyzer configured; set analyzer.command or pass --violations")
)

type violationsFlags struct {
	format           string
	violations       string
	violationsFormat string
	fromSnapshot     bool
}

func newViolationsCommand() *cobra.Command {
	var cfg config.Config
	flags := &violationsFlags{}

	cmd := &cobra.Command{
		Use:   "violations <file>",
		Short: "List the violations of a file",
		Long: `Run the analyzer against one file and list its violations without
fixing anything. With --from-snapshot the list is read from the store
snapshot written by the last fix or watch run instead.

Examples:
  stylefix violations --project App.csproj Widget.cs
  stylefix violations --from-snapshot Widget.cs
  stylefix violations --format json Widget.cs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViolations(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&cfg.Project, "project", "", `project or solution passed to the analyzer, or "auto"`)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.violations, "violations", "", "read violations from saved analyzer output")
	cmd.Flags().StringVar(&flags.violationsFormat, "violations-format", "text", "format of --violations: text, sarif, xml")
	cmd.Flags().BoolVar(&flags.fromSnapshot, "from-snapshot", false, "read violations from the store snapshot")

	return cmd
}

func runViolations(cmd *cobra.Command, file string, cliCfg *config.Config, flags *violationsFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	path = filepath.Clean(path)

	st := store.New()
	var summaries []store.Summary

	if flags.fromSnapshot {
		if cfg.Store.Snapshot == "" {
			return errNoSnapshot
		}
		if err := st.Load(cfg.Store.Snapshot); err != nil {
			return err
		}
		summaries = st.Get(path)
	} else {
		summaries, err = analyzeFile(cmd, cfg, flags, st, path, workDir)
		if err != nil {
			return err
		}
	}

	logging.Default().Debug("violations listed",
		logging.FieldPath, path,
		logging.FieldTotal, len(summaries),
	)

	return writeSummaries(cmd, file, summaries, flags.format)
}

func analyzeFile(
	cmd *cobra.Command,
	cfg *config.Config,
	flags *violationsFlags,
	st *store.Store,
	path, workDir string,
) ([]store.Summary, error) {
	var static analyzer.Analyzer
	if flags.violations != "" {
		vf, err := analyzer.ParseFormat(flags.violationsFormat)
		if err != nil {
			return nil, fmt.Errorf("invalid violations format: %w", err)
		}
		loaded, err := analyzer.Load(flags.violations, vf)
		if err != nil {
			return nil, err
		}
		static = loaded
	}

	opts, err := fixerOptions(cfg, static, st)
	if err != nil {
		return nil, err
	}
	if opts.Analyzer == nil {
		return nil, errNoAnalyzer
	}

	project := cfg.Project
	switch {
	case project == config.ProjectAuto:
		project = runner.FindProject(path)
	case project == "" && static != nil:
		project = workDir
	}
	if project == "" {
		return nil, fmt.Errorf("no project for %s; pass --project", path)
	}

	logger := logging.Default()
	loadSnapshot(cfg, st, logger)

	ctx := commandContext(cmd)
	summaries, err := engine.New(opts).Reanalyze(ctx, project, path)
	if err != nil {
		return nil, err
	}
	saveSnapshot(ctx, cfg, st, logger)
	return summaries, nil
}

func writeSummaries(cmd *cobra.Command, file string, summaries []store.Summary, format string) error {
	out := cmd.OutOrStdout()

	if format == formatJSON {
		if summaries == nil {
			summaries = []store.Summary{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summaries); err != nil {
			return fmt.Errorf("encoding violations: %w", err)
		}
		return nil
	}

	for _, s := range summaries {
		if _, err := fmt.Fprintf(out, "%s:%d: %s\n", file, s.Line, s.Message); err != nil {
			return fmt.Errorf("writing violations: %w", err)
		}
	}
	return nil
}
