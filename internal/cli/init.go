package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/stylefix/internal/logging"
	"github.com/yaklabco/stylefix/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	full    bool
	format  string
	output  string
	company string
	author  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new stylefix configuration file",
		Long: `Create a new .stylefix.yaml configuration file in the working directory.
The file sets up the copyright header, the analyzer command and the rules
to fix.

Examples:
  stylefix init                              Create minimal .stylefix.yaml
  stylefix init --full                       List every rule in the file
  stylefix init --format toml                Create .stylefix.toml instead
  stylefix init --company Acme --author "Jo Doe"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "List every rule in the template")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .stylefix.yaml or .stylefix.toml)")
	cmd.Flags().StringVar(&flags.company, "company", "", "Company name for the copyright header")
	cmd.Flags().StringVar(&flags.author, "author", "", "Author name for the copyright header")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	format := config.FileFormat(flags.format)
	if format != config.FileFormatYAML && format != config.FileFormatTOML {
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".stylefix." + flags.format
	}

	workDir, err := workingDir(cmd)
	if err != nil {
		return err
	}
	target := absPath(workDir, outputPath)

	if _, err := os.Stat(target); err == nil && !flags.force {
		if !isInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
			fmt.Sprintf("%s already exists. Overwrite? [y/N] ", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing file unchanged", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:    flags.full,
		Format:  format,
		Company: flags.company,
		Author:  flags.author,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(target, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.company == "" {
		logger.Info("set company to add copyright headers")
	}
	logger.Info("run 'stylefix rules' to see all available rules")

	return nil
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // File descriptors fit in int
}

// confirm asks a yes/no question and reads one line of answer.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := io.WriteString(out, question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
