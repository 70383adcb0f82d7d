package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Discover finds C# files matching opts. It returns a sorted list of
// absolute file paths without duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	w := walker{ctx: ctx, workDir: workDir, opts: opts}
	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(input) {
			abs = filepath.Join(workDir, input)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if w.matchesFile(abs) {
				add(abs)
			}
			continue
		}

		found, err := w.walk(abs)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type walker struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call
	workDir string
	opts    Options
}

func (w walker) walk(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		name := entry.Name()
		if entry.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(name, ".") ||
				slices.Contains(w.opts.effectiveSkipDirs(), name) ||
				w.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// WalkDir does not follow links; walk the target itself.
				sub, err := w.walk(target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if !strings.HasPrefix(name, ".") && w.matchesFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func (w walker) matchesFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !slices.ContainsFunc(w.opts.effectiveExtensions(), func(e string) bool {
		return strings.ToLower(e) == ext
	}) {
		return false
	}
	return !w.excluded(p)
}

func (w walker) excluded(p string) bool {
	rel, err := filepath.Rel(w.workDir, p)
	if err != nil {
		rel = p
	}
	return slices.ContainsFunc(w.opts.ExcludeGlobs, func(pattern string) bool {
		return MatchGlob(rel, pattern)
	})
}

// MatchGlob matches a slash- or OS-separated relative path against a glob.
// "**" matches any number of path segments. A pattern without a separator
// also matches the base name, so "*.Designer.cs" excludes at any depth.
func MatchGlob(name, pattern string) bool {
	name = filepath.ToSlash(name)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(name)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(name, "/"), strings.Split(pattern, "/"))
}

func matchSegments(name, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(name[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		name, pattern = name[1:], pattern[1:]
	}
	return len(name) == 0
}

// FindProject returns the nearest .csproj, or failing that .sln, in the
// directory of file or one of its parents. It returns "" if there is none.
func FindProject(file string) string {
	dir := filepath.Dir(file)
	for {
		for _, pattern := range []string{"*.csproj", "*.sln"} {
			matches, _ := filepath.Glob(filepath.Join(dir, pattern))
			if len(matches) > 0 {
				sort.Strings(matches)
				return matches[0]
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
