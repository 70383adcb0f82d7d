// Package fsutil reads and writes C# sources safely: it keeps the byte
// order mark, detects concurrent edits and writes atomically with optional
// sidecar backups.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// utf8BOM is written by Visual Studio at the start of most C# files.
//
//nolint:gochecknoglobals // Constant byte sequence
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileInfo captures the state of a file when it was read.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the raw content, BOM included.
	Hash [32]byte
}

// Source is a source file read for fixing.
type Source struct {
	// Info is the state of the file at read time.
	Info *FileInfo

	// Text is the content without the byte order mark.
	Text string

	// BOM reports whether the file started with a UTF-8 byte order mark.
	BOM bool
}

// Encode returns text as file content, restoring the byte order mark if the
// source had one.
func (s *Source) Encode(text string) []byte {
	if !s.BOM {
		return []byte(text)
	}
	out := make([]byte, 0, len(utf8BOM)+len(text))
	out = append(out, utf8BOM...)
	return append(out, text...)
}

// ReadSource reads the file at path.
func ReadSource(ctx context.Context, path string) (*Source, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	src := &Source{Info: info}
	if bytes.HasPrefix(content, utf8BOM) {
		src.BOM = true
		content = content[len(utf8BOM):]
	}
	src.Text = string(content)
	return src, nil
}

// ReadFile reads a file and returns its raw content with its metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path) //nolint:gosec // Caller-provided source path
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

// Changed reports whether the file described by info was modified since it
// was read. Mod time and size are compared first; when strict is set the
// content is also re-hashed. A deleted file counts as modified.
func Changed(ctx context.Context, info *FileInfo, strict bool) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}
	if !strict {
		return false, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}
