package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/stylefix/internal/logging"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of stylefix.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(map[string]string{
					logging.FieldVersion: info.Version,
					logging.FieldCommit:  info.Commit,
					logging.FieldBuilt:   info.Date,
					"go":                 runtime.Version(),
				}); err != nil {
					return fmt.Errorf("encoding version: %w", err)
				}
				return nil
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			logger.SetPrefix("")
			logger.Info("stylefix",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
