package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/mdmend/pkg/fsutil"
)

// snapshot writes content to a doc in a temp dir and reads it back through
// ReadFile, returning the path and its FileInfo.
func snapshot(t *testing.T, content string) (string, *fsutil.FileInfo) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, info, err := fsutil.ReadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return path, info
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("returns content and a complete snapshot", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		if err := os.WriteFile(path, []byte(repairedDoc), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		if string(got) != repairedDoc {
			t.Errorf("content = %q, want %q", got, repairedDoc)
		}
		if info.Path != path {
			t.Errorf("Path = %q, want %q", info.Path, path)
		}
		if info.Size != int64(len(repairedDoc)) {
			t.Errorf("Size = %d, want %d", info.Size, len(repairedDoc))
		}
		if info.Mode != 0644 {
			t.Errorf("Mode = %o, want %o", info.Mode, 0644)
		}
		if info.Hash == ([32]byte{}) {
			t.Error("Hash should not be zero")
		}
	})

	t.Run("missing file maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("directory maps to ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("expected ErrIsDirectory, got %v", err)
		}
	})

	t.Run("cancelled context is an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, "anypath"); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("untouched document is unmodified", func(t *testing.T) {
		t.Parallel()

		_, info := snapshot(t, repairedDoc)
		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if modified {
			t.Error("expected file to be unmodified")
		}
	})

	t.Run("rewritten document is modified", func(t *testing.T) {
		t.Parallel()

		path, info := snapshot(t, repairedDoc)
		if err := os.WriteFile(path, []byte(repairedDoc+"\nmore prose\n"), 0644); err != nil {
			t.Fatalf("modify: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("expected file to be modified")
		}
	})

	t.Run("deleted document is modified", func(t *testing.T) {
		t.Parallel()

		path, info := snapshot(t, repairedDoc)
		if err := os.Remove(path); err != nil {
			t.Fatalf("delete: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("expected deleted file to count as modified")
		}
	})

	t.Run("nil snapshot is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(context.Background(), nil); err == nil {
			t.Fatal("expected error for nil FileInfo")
		}
	})

	t.Run("cancelled context is an error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := fsutil.CheckModified(ctx, &fsutil.FileInfo{Path: "anypath"}); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestCheckModifiedQuick(t *testing.T) {
	t.Parallel()

	t.Run("untouched document is unmodified", func(t *testing.T) {
		t.Parallel()

		_, info := snapshot(t, repairedDoc)
		modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if modified {
			t.Error("expected file to be unmodified")
		}
	})

	t.Run("size change is caught", func(t *testing.T) {
		t.Parallel()

		path, info := snapshot(t, repairedDoc)
		if err := os.WriteFile(path, []byte(repairedDoc+"appendix\n"), 0644); err != nil {
			t.Fatalf("modify: %v", err)
		}

		modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if !modified {
			t.Error("expected file to be modified")
		}
	})

	t.Run("mod time change alone is caught", func(t *testing.T) {
		t.Parallel()

		path, info := snapshot(t, repairedDoc)
		bumped := info.ModTime.Add(time.Hour)
		if err := os.Chtimes(path, bumped, bumped); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if !modified {
			t.Error("expected file to be modified")
		}
	})
}
