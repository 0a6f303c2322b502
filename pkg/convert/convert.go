// Package convert turns Word documents into Markdown by driving a pandoc
// subprocess. The output keeps extracted images under a media/media
// directory so documents survive being moved next to their assets.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/mdmend/pkg/fsutil"
)

// ErrPandocMissing is returned when pandoc is not installed or not on PATH.
// Callers should surface an install hint rather than a raw exec error.
var ErrPandocMissing = errors.New("pandoc is not installed or not on PATH")

// targetFormat is the pandoc output format. GitHub Flavored Markdown keeps
// tables as pipe tables instead of HTML.
const targetFormat = "gfm"

const (
	outputDirMode = 0o755
	markdownMode  = 0o644
	mediaSubdir   = "media"
)

// Result describes a finished conversion.
type Result struct {
	// MarkdownPath is the generated Markdown file.
	MarkdownPath string

	// MediaDir is the directory holding extracted images, empty when the
	// document had none.
	MediaDir string
}

var mediaLinkRe = regexp.MustCompile(`!\[(.*?)\]\(media/`)

// Available reports whether pandoc can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("pandoc")
	return err == nil
}

// DocxToMarkdown converts one .docx file into <outputDir>/<base>.md,
// extracting embedded images under <outputDir>/media/media and rewriting
// image links to match.
func DocxToMarkdown(ctx context.Context, docxPath, outputDir string) (*Result, error) {
	info, err := os.Stat(docxPath)
	if err != nil {
		return nil, fmt.Errorf("input document: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("input document %s is a directory", docxPath)
	}

	pandoc, err := exec.LookPath("pandoc")
	if err != nil {
		return nil, ErrPandocMissing
	}

	if err := os.MkdirAll(outputDir, outputDirMode); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(docxPath), filepath.Ext(docxPath))
	mdPath := filepath.Join(outputDir, base+".md")
	mediaDir := filepath.Join(outputDir, mediaSubdir)

	cmd := exec.CommandContext(ctx, pandoc,
		docxPath,
		"-f", "docx",
		"-t", targetFormat,
		"--extract-media", mediaDir,
		"-o", mdPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("pandoc: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("pandoc: %w", err)
	}

	hasMedia, err := nestMedia(mediaDir)
	if err != nil {
		return nil, err
	}

	if err := rewriteMediaLinks(ctx, mdPath); err != nil {
		return nil, err
	}

	result := &Result{MarkdownPath: mdPath}
	if hasMedia {
		result.MediaDir = mediaDir
	}
	return result, nil
}

// nestMedia moves the files pandoc extracted into media/ one level deeper,
// to media/media/. Reports whether any media files exist.
func nestMedia(mediaDir string) (bool, error) {
	entries, err := os.ReadDir(mediaDir)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read media directory: %w", err)
	}

	inner := filepath.Join(mediaDir, mediaSubdir)
	if err := os.MkdirAll(inner, outputDirMode); err != nil {
		return false, fmt.Errorf("create media directory: %w", err)
	}

	moved := false
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(mediaDir, entry.Name())
		dst := filepath.Join(inner, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return false, fmt.Errorf("move media file: %w", err)
		}
		moved = true
	}

	return moved, nil
}

// rewriteMediaLinks updates image links in the generated Markdown to point
// at the nested media/media directory.
func rewriteMediaLinks(ctx context.Context, mdPath string) error {
	content, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("read generated markdown: %w", err)
	}

	updated := mediaLinkRe.ReplaceAll(content, []byte("![$1](media/media/"))
	if bytes.Equal(updated, content) {
		return nil
	}

	if err := fsutil.WriteAtomic(ctx, mdPath, updated, markdownMode); err != nil {
		return fmt.Errorf("rewrite media links: %w", err)
	}
	return nil
}
