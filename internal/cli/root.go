// Package cli provides the Cobra command structure for stylefix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root stylefix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var chdir string

	rootCmd := &cobra.Command{
		Use:   "stylefix",
		Short: "Automatic fixes for StyleCop violations in C# code",
		Long: `stylefix repairs StyleCop violations in C# source files.

An external analyzer reports the violations of each file. stylefix then
applies line-based fixes in a fixed order (renaming, spacing, readability,
blank lines, documentation headers, custom rules, using placement and
access modifiers) and adds a copyright header. Files that do not compile
are never touched unless forced, and every write is guarded by conflict
detection, dry-run mode and optional backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in this directory")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFixCommand(info))
	rootCmd.AddCommand(newViolationsCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
