package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
)

// appName names the system and user config directories.
const appName = "stylefix"

// ConfigPaths holds the config files found for each layer. Layers without a
// file are empty.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigFiles are searched in each directory, in order.
	projectConfigFiles = []string{
		".stylefix.yaml", ".stylefix.yml", ".stylefix.toml",
		"stylefix.yaml", "stylefix.yml", "stylefix.toml",
	}

	// dirConfigFiles are the names used in the system and user directories.
	dirConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project config files for
// workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{System: firstFile(systemConfigDir(), dirConfigFiles)}
	if dir, err := UserConfigDir(); err == nil {
		paths.User = firstFile(dir, dirConfigFiles)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project
	return paths, nil
}

// systemConfigDir is /etc/stylefix, or %ProgramData%\stylefix on Windows.
func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, appName)
}

// UserConfigDir returns $XDG_CONFIG_HOME/stylefix, falling back to
// ~/.config/stylefix. The directory need not exist.
func UserConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// FindProjectConfig searches startDir and its parents for a project config
// file. The search ends after a directory that is a repository root or holds
// a solution file, and at the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}
		if isProjectRoot(dir) || dir == home {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// isProjectRoot reports whether dir is a repository root or holds a .sln.
func isProjectRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	solutions, _ := filepath.Glob(filepath.Join(dir, "*.sln"))
	return len(solutions) > 0
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
