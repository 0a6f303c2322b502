// Package mdsplit splits a Markdown document into per-section files at a
// chosen heading level. The document is parsed with goldmark so that heading
// markers inside fenced code blocks never act as split points.
package mdsplit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/mdmend/pkg/fsutil"
)

// ErrNoSections is returned when the document has no heading at the
// requested level, so there is nothing to split on.
var ErrNoSections = errors.New("no headings at the requested level")

// DefaultLevel is the heading level used when none is configured.
const DefaultLevel = 2

// prologueFilename holds the content found before the first split heading.
// The numeric prefix keeps it first in a directory listing.
const prologueFilename = "00_prologue.md"

const (
	maxFilenameRunes = 100
	partFileMode     = 0o644
	partDirMode      = 0o755
)

// Options configures a split.
type Options struct {
	// Level is the heading level to split on (1 to 6); 0 means
	// DefaultLevel.
	Level int

	// Prologue controls whether content before the first split heading
	// becomes its own part. When false that content is dropped.
	Prologue bool
}

// Part is one output file of a split.
type Part struct {
	Title    string
	Filename string
	Content  string
}

var (
	leadingHashRe = regexp.MustCompile(`^[#\s]+`)
	invalidCharRe = regexp.MustCompile(`[\\/*?:"<>|]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
)

// Split cuts the document at every heading of the configured level. Each
// part runs from its heading line up to the next one, and filenames are
// derived from the heading text. Returns ErrNoSections when no heading of
// that level exists.
func Split(doc string, opts Options) ([]Part, error) {
	level := opts.Level
	if level == 0 {
		level = DefaultLevel
	}
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("split level must be between 1 and 6, got %d", level)
	}

	src := []byte(doc)
	headings := findHeadings(src, level)
	if len(headings) == 0 {
		return nil, ErrNoSections
	}

	var parts []Part
	seen := make(map[string]int)

	if opts.Prologue {
		prologue := strings.TrimSpace(doc[:headings[0].start])
		if prologue != "" {
			parts = append(parts, Part{
				Title:    "prologue",
				Filename: prologueFilename,
				Content:  prologue + "\n",
			})
		}
	}

	for i, h := range headings {
		end := len(doc)
		if i+1 < len(headings) {
			end = headings[i+1].start
		}

		parts = append(parts, Part{
			Title:    h.title,
			Filename: uniqueFilename(sanitizeFilename(h.title), seen),
			Content:  strings.TrimSpace(doc[h.start:end]) + "\n",
		})
	}

	return parts, nil
}

// WriteParts writes every part into dir, creating it if needed. Writes are
// atomic, so an interrupted run never leaves a truncated section behind.
func WriteParts(ctx context.Context, dir string, parts []Part) error {
	if err := os.MkdirAll(dir, partDirMode); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for _, part := range parts {
		path := filepath.Join(dir, part.Filename)
		if err := fsutil.WriteAtomic(ctx, path, []byte(part.Content), partFileMode); err != nil {
			return fmt.Errorf("write %s: %w", part.Filename, err)
		}
	}

	return nil
}

// CountFencedBlocks parses the document and counts its fenced code blocks.
// Used as a final audit after repairs: the parser sees the document the way
// a renderer will, so a miscounted fence shows up here.
func CountFencedBlocks(doc string) int {
	src := []byte(doc)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	count := 0
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if _, ok := n.(*ast.FencedCodeBlock); ok && entering {
			count++
		}
		return ast.WalkContinue, nil
	})
	return count
}

// headingMark is a split point: the byte offset of the heading's line start
// and its text.
type headingMark struct {
	start int
	title string
}

// findHeadings parses the document and returns the split points for every
// heading of the given level, in document order.
func findHeadings(src []byte, level int) []headingMark {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	var marks []headingMark
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		h, ok := child.(*ast.Heading)
		if !ok || h.Level != level {
			continue
		}
		if h.Lines().Len() == 0 {
			// Heading with no text; nothing to name a file after.
			continue
		}

		seg := h.Lines().At(0)
		marks = append(marks, headingMark{
			start: lineStart(src, seg.Start),
			title: strings.TrimSpace(string(src[seg.Start:seg.Stop])),
		})
	}

	return marks
}

// lineStart walks back from offset to the start of the containing line.
func lineStart(src []byte, offset int) int {
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// sanitizeFilename turns a heading title into a safe Markdown filename:
// leading hashes and whitespace go, characters that are invalid on common
// filesystems go, runs of whitespace become underscores, and the result is
// capped at 100 runes.
func sanitizeFilename(title string) string {
	name := leadingHashRe.ReplaceAllString(title, "")
	name = invalidCharRe.ReplaceAllString(name, "")
	name = spaceRunRe.ReplaceAllString(strings.TrimSpace(name), "_")

	if name == "" {
		name = "section"
	}

	if runes := []rune(name); len(runes) > maxFilenameRunes {
		name = string(runes[:maxFilenameRunes])
	}

	return name + ".md"
}

// uniqueFilename disambiguates repeated heading titles with a numeric
// suffix so later sections never overwrite earlier ones.
func uniqueFilename(name string, seen map[string]int) string {
	seen[name]++
	if seen[name] == 1 {
		return name
	}

	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), seen[name], ext)
}
