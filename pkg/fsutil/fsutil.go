// Package fsutil provides the file safety primitives the repair commands
// build on: reads that capture a content fingerprint, atomic writes, change
// detection between read and write, and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorization via errors.Is.
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

// FileInfo is a snapshot of a file taken at read time. Comparing a later
// state against it tells whether someone else touched the document while a
// repair was in flight.
type FileInfo struct {
	Path string

	// Mode is carried through to the rewrite so repaired files keep
	// their permissions.
	Mode os.FileMode

	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content as read.
	Hash [32]byte
}

// ReadFile reads a document and snapshots its state for later modification
// checks.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	case err != nil:
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	case stat.IsDir():
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file changed since info was taken. It
// first compares mod time and size, then falls back to re-hashing the
// content so timestamp-preserving edits are still caught. A deleted file
// counts as modified.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	changed, stat, err := quickCheck(ctx, info)
	if err != nil || stat == nil {
		return changed, err
	}
	if changed {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

// CheckModifiedQuick compares only mod time and size. Cheaper than
// CheckModified, and enough for the window between reading a document and
// writing its repair back.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	changed, _, err := quickCheck(ctx, info)
	return changed, err
}

// quickCheck stats info.Path and compares mod time and size. A nil stat in
// the result means the file is gone (reported as changed).
func quickCheck(ctx context.Context, info *FileInfo) (bool, os.FileInfo, error) {
	if info == nil {
		return false, nil, ErrNilFileInfo
	}

	select {
	case <-ctx.Done():
		return false, nil, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil, nil
		}
		return false, nil, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	return !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size, stat, nil
}
