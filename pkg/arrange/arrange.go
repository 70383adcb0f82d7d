// Package arrange runs an external member-reordering formatter over emitted
// text.
package arrange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout is the budget of one arrange run.
const DefaultTimeout = 7 * time.Second

// FilePlaceholder is replaced with the path of a temporary file holding the
// text. Without it the text is piped through stdin and stdout.
const FilePlaceholder = "{file}"

// Sentinel errors for arrange operations.
var (
	// ErrNoCommand indicates no formatter is configured.
	ErrNoCommand = errors.New("arrange command not configured")

	// ErrEmptyOutput indicates the formatter produced no text.
	ErrEmptyOutput = errors.New("arrange produced no output")
)

// Formatter rewrites a whole source text.
type Formatter interface {
	Arrange(ctx context.Context, text string) (string, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(ctx context.Context, text string) (string, error)

// Arrange implements Formatter.
func (f FormatterFunc) Arrange(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Command runs an external formatter.
type Command struct {
	// Name is the executable.
	Name string

	// Args are passed after placeholder substitution.
	Args []string

	// Timeout bounds the run. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Arrange implements Formatter.
func (c *Command) Arrange(ctx context.Context, text string) (string, error) {
	if c == nil || c.Name == "" {
		return "", ErrNoCommand
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.usesFile() {
		return c.arrangeFile(ctx, text)
	}
	return c.arrangeStdin(ctx, text)
}

func (c *Command) usesFile() bool {
	for _, a := range c.Args {
		if strings.Contains(a, FilePlaceholder) {
			return true
		}
	}
	return false
}

func (c *Command) arrangeStdin(ctx context.Context, text string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec // Configured by the user
	cmd.Stdin = strings.NewReader(text)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := c.run(ctx, cmd); err != nil {
		return "", err
	}
	if stdout.Len() == 0 && text != "" {
		return "", ErrEmptyOutput
	}
	return stdout.String(), nil
}

func (c *Command) arrangeFile(ctx context.Context, text string) (string, error) {
	dir, err := os.MkdirTemp("", "stylefix-arrange-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "arrange.cs")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = strings.ReplaceAll(a, FilePlaceholder, path)
	}

	cmd := exec.CommandContext(ctx, c.Name, args...) //nolint:gosec // Configured by the user
	if err := c.run(ctx, cmd); err != nil {
		return "", err
	}

	out, err := os.ReadFile(path) //nolint:gosec // Temp file created above
	if err != nil {
		return "", fmt.Errorf("reading arranged file: %w", err)
	}
	if len(out) == 0 && text != "" {
		return "", ErrEmptyOutput
	}
	return string(out), nil
}

func (c *Command) run(ctx context.Context, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	if ctx.Err() != nil {
		return fmt.Errorf("arrange %s: %w", c.Name, ctx.Err())
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("arrange %s: %w: %s", c.Name, err, msg)
		}
		return fmt.Errorf("arrange %s: %w", c.Name, err)
	}
	return nil
}
