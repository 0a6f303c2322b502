package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used for newly created files when no mode is given.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic replaces path with content via a temp file and rename, so a
// repaired document is never observable half-written. The temp file lives
// in the target's directory to keep the rename on one filesystem. A zero
// mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tf, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	renamed := false
	defer func() {
		if !renamed {
			_ = tf.Close()
			_ = os.Remove(tf.Name())
		}
	}()

	if _, err := tf.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tf.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tf.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Mode must be in place before the file appears under its real name.
	if err := os.Chmod(tf.Name(), mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tf.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	renamed = true
	return nil
}

// WriteAtomicIfChanged writes only when content differs from what is on
// disk, reporting whether a write happened. A missing file counts as
// changed.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to the write
	case err != nil:
		return false, fmt.Errorf("read existing: %w", err)
	case bytes.Equal(existing, content):
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
