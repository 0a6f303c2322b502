// Package mdrepair finds, parses, and rebuilds malformed fenced code blocks
// in Markdown documents produced by imperfect document converters. It
// recognises both standard backtick fences and the non-standard dashed
// blocks some converters emit, repairs their delimiters, cleans converter
// artifacts from their contents, and re-emits them in canonical fenced form
// while leaving the surrounding document untouched.
package mdrepair

import "strings"

// SegmentKind discriminates the segment variants produced by the scanner.
type SegmentKind int

const (
	// SegmentPlain is a run of ordinary document lines.
	SegmentPlain SegmentKind = iota

	// SegmentFenced is a code block bounded by backtick fence lines.
	// Text includes both fence lines.
	SegmentFenced

	// SegmentDashed is a non-standard code block bounded by dash-rule
	// lines. Text excludes the delimiter lines.
	SegmentDashed
)

// String returns the segment kind name for logging.
func (k SegmentKind) String() string {
	switch k {
	case SegmentPlain:
		return "plain"
	case SegmentFenced:
		return "fenced"
	case SegmentDashed:
		return "dashed"
	default:
		return "unknown"
	}
}

// Segment is one ordered slice of the document. Concatenating the Text of
// all segments in order (joined by newlines) reproduces the scanned input,
// modulo the repairs applied to block segments afterwards.
type Segment struct {
	Kind SegmentKind

	// Lines holds the segment's raw lines, without trailing newlines.
	Lines []string
}

// Text returns the segment's lines joined into one string.
func (s Segment) Text() string {
	return strings.Join(s.Lines, "\n")
}

// IsBlock reports whether the segment is a code block of either kind.
func (s Segment) IsBlock() bool {
	return s.Kind == SegmentFenced || s.Kind == SegmentDashed
}
