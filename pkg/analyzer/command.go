package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds one analyzer run.
const DefaultTimeout = 2 * time.Minute

// waitDelay bounds how long output pipes are drained after the process is
// killed, since child processes may keep them open.
const waitDelay = time.Second

// Placeholders substituted in Command arguments.
const (
	ProjectPlaceholder = "{project}"
	FilePlaceholder    = "{file}"
)

// Command runs an external analyzer and parses its standard output.
//
// Analyzers usually exit non-zero when they report violations, so a failed
// exit is only an error when nothing parseable was printed.
type Command struct {
	// Name is the executable.
	Name string

	// Args are passed to the executable after placeholder substitution.
	// When no argument mentions {file}, the file path is appended.
	Args []string

	// Format is the output format.
	Format Format

	// Timeout bounds the run. Zero means DefaultTimeout.
	Timeout time.Duration

	// Dir is the working directory. Empty means the project directory.
	Dir string
}

// Analyze implements Analyzer.
func (c *Command) Analyze(ctx context.Context, projectPath, filePath string) ([]Finding, error) {
	if c == nil || c.Name == "" {
		return nil, ErrNoCommand
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.Name, c.args(projectPath, filePath)...) //nolint:gosec // Configured by the user
	cmd.WaitDelay = waitDelay
	cmd.Dir = c.Dir
	if cmd.Dir == "" {
		cmd.Dir = projectDir(projectPath)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("analyzer %s: %w", c.Name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, fmt.Errorf("running analyzer %s: %w", c.Name, runErr)
	}
	if runErr != nil && stdout.Len() == 0 {
		return nil, fmt.Errorf("analyzer %s: %w: %s", c.Name, runErr, strings.TrimSpace(stderr.String()))
	}

	findings, err := Parse(c.Format, stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return forFile(findings, filePath), nil
}

// args substitutes placeholders in the configured arguments.
func (c *Command) args(projectPath, filePath string) []string {
	replacer := strings.NewReplacer(ProjectPlaceholder, projectPath, FilePlaceholder, filePath)

	out := make([]string, 0, len(c.Args)+1)
	mentionsFile := false
	for _, a := range c.Args {
		if strings.Contains(a, FilePlaceholder) {
			mentionsFile = true
		}
		out = append(out, replacer.Replace(a))
	}
	if !mentionsFile && filePath != "" {
		out = append(out, filePath)
	}
	return out
}
