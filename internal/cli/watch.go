package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/engine"
	"github.com/yaklabco/stylefix/pkg/runner"
	"github.com/yaklabco/stylefix/pkg/store"
	"github.com/yaklabco/stylefix/pkg/watch"
)

var (
	errNoProject      = errors.New("watch needs a project; pass --project or set project")
	errNoProjectFound = errors.New("no .csproj or .sln found")
)

type watchFlags struct {
	debounce  string
	noInitial bool
}

func newWatchCommand() *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-analyze C# files as they are saved",
		Long: `Watch directories and re-run the analyzer for each C# file that is
saved. The violation store is refreshed after every batch of changes and
written to store.snapshot when one is configured, for editor integrations.
Nothing is fixed.

Examples:
  stylefix watch --project App.csproj src/
  stylefix watch --project auto`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&cfg.Project, "project", "", `project or solution passed to the analyzer, or "auto"`)
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files analyzed at once (0 = 1)")
	cmd.Flags().StringVar(&flags.debounce, "debounce", "200ms", "quiet period before changed files are analyzed")
	cmd.Flags().BoolVar(&flags.noInitial, "no-initial", false, "skip analyzing every file at startup")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *watchFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return errNoProject
	}

	debounce, err := parseDuration("debounce", flags.debounce)
	if err != nil {
		return err
	}

	st := store.Default()
	loadSnapshot(cfg, st, logger)

	opts, err := fixerOptions(cfg, nil, st)
	if err != nil {
		return err
	}
	if opts.Analyzer == nil {
		return errNoAnalyzer
	}

	roots := make([]string, 0, len(args))
	for _, arg := range args {
		roots = append(roots, absPath(workDir, arg))
	}
	if len(roots) == 0 {
		roots = []string{workDir}
	}

	var initial []string
	if !flags.noInitial {
		initial, err = runner.Discover(ctx, runner.Options{
			Paths:        roots,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
		})
		if err != nil {
			return err
		}
	}

	a := &analysisLoop{
		out:     cmd.OutOrStdout(),
		workDir: workDir,
		project: cfg.Project,
		fixer:   engine.New(opts),
	}

	w, err := watch.New(watch.Options{
		Roots:      roots,
		Extensions: runner.DefaultExtensions(),
		SkipDirs:   runner.DefaultSkipDirs(),
		Debounce:   debounce,
		Jobs:       cfg.Jobs,
		Initial:    initial,
		Handle:     a.analyze,
		Removed:    st.Delete,
		BatchDone: func(paths []string) {
			logger.Debug("batch analyzed", logging.FieldPaths, paths)
			saveSnapshot(ctx, cfg, st, logger)
		},
		OnError: func(err error) {
			logger.Error("analysis failed", logging.FieldError, err)
		},
	})
	if err != nil {
		return err
	}

	logger.Info("watching for changes", logging.FieldPaths, w.Dirs())
	return w.Run(ctx)
}

// analysisLoop re-analyzes one file per call. Reanalyze only touches the
// store, so one Fixer serves concurrent calls.
type analysisLoop struct {
	mu      sync.Mutex
	out     io.Writer
	workDir string
	project string
	fixer   *engine.Fixer
}

func (a *analysisLoop) analyze(ctx context.Context, path string) error {
	project := a.project
	if project == config.ProjectAuto {
		project = runner.FindProject(path)
		if project == "" {
			return errNoProjectFound
		}
	}

	summaries, err := a.fixer.Reanalyze(ctx, project, path)
	if err != nil {
		return err
	}

	rel := path
	if r, err := filepath.Rel(a.workDir, path); err == nil {
		rel = r
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(summaries) == 0 {
		_, err = fmt.Fprintf(a.out, "%s: ok\n", rel)
		return err
	}
	for _, s := range summaries {
		if _, err := fmt.Fprintf(a.out, "%s:%d: %s\n", rel, s.Line, s.Message); err != nil {
			return err
		}
	}
	return nil
}

func absPath(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}

func parseDuration(flag, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return d, nil
}
