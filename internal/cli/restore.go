package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/config"
	"github.com/yaklabco/stylefix/pkg/fsutil"
	"github.com/yaklabco/stylefix/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore C# files from the backups of a fix run",
		Long: `Copy each sidecar backup written by "stylefix fix --fix" back over its
file and remove the backup. Files without a backup are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be restored")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, dryRun bool) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cfg, workDir, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == fsutil.BackupModeNone {
		mode = fsutil.BackupModeSidecar
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
	})
	if err != nil {
		return err
	}

	var restored int
	var errs []error
	for _, path := range files {
		if !fsutil.BackupExists(path, mode) {
			continue
		}
		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			restored++
			continue
		}

		ok, err := fsutil.RestoreBackup(ctx, path, mode)
		if err != nil {
			logger.Error("restore failed", logging.FieldPath, path, logging.FieldError, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if ok {
			logger.Debug("restored", logging.FieldPath, path)
			restored++
		}
	}

	if dryRun {
		logger.Info("files with backups", logging.FieldTotal, restored)
	} else {
		logger.Info("restored files", logging.FieldTotal, restored)
	}
	return errors.Join(errs...)
}
