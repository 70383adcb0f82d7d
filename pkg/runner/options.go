// Package runner fixes many C# files concurrently.
package runner

import "github.com/yaklabco/stylefix/pkg/engine"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered C#. Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// SkipDirs are directory names never descended into. Defaults to
	// DefaultSkipDirs().
	SkipDirs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Request is the template for each file's fix request. FilePath is set
	// per file.
	Request engine.Request

	// AutoProject resolves Request.ProjectPath per file to the nearest
	// enclosing .csproj or .sln when Request.ProjectPath is empty.
	AutoProject bool

	// Pipeline controls writing, dry runs and backups.
	Pipeline engine.PipelineOptions

	// NewFixer builds the Fixer used by one worker. Required.
	NewFixer func() *engine.Fixer
}

// DefaultExtensions returns the default set of C# file extensions.
func DefaultExtensions() []string {
	return []string{".cs"}
}

// DefaultSkipDirs returns the build output directories of a .NET project.
func DefaultSkipDirs() []string {
	return []string{"bin", "obj"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveSkipDirs() []string {
	if o.SkipDirs == nil {
		return DefaultSkipDirs()
	}
	return o.SkipDirs
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
