package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files created without one.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic writes content to path through a synced temp file in the same
// directory and a rename. On error the original file is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode.Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	done = true
	return nil
}

// WriteSource writes text back to the file src was read from, restoring the
// byte order mark and the file mode. It reports false without writing when
// the content is unchanged.
func WriteSource(ctx context.Context, src *Source, text string) (bool, error) {
	if src == nil || src.Info == nil {
		return false, ErrNilFileInfo
	}
	if text == src.Text {
		return false, nil
	}
	if err := WriteAtomic(ctx, src.Info.Path, src.Encode(text), src.Info.Mode); err != nil {
		return false, err
	}
	return true, nil
}
