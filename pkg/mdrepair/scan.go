package mdrepair

import (
	"regexp"
	"strings"
)

// fenceMarker opens and closes a standard code block.
const fenceMarker = "```"

// maxFenceLineLen bounds the non-backtick remainder of a fence line. A line
// with three backticks and a long tail is prose that happens to start with
// backticks, not a delimiter.
const maxFenceLineLen = 15

var (
	dashedDelimiterRe = regexp.MustCompile(`^\s*-{3,}[ \t]*$`)
	fusedFenceRe      = regexp.MustCompile("(?m)^(```[ \t]*)(```.*)$")
)

// IsFenceLine reports whether line is a standard fence delimiter: after
// removing every backtick fewer than maxFenceLineLen characters remain and
// the trimmed line starts with the fence marker.
func IsFenceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return false
	}
	return len(strings.ReplaceAll(trimmed, "`", "")) < maxFenceLineLen
}

// IsDashedDelimiter reports whether line is a dashed block delimiter:
// three or more dashes and nothing else but whitespace.
func IsDashedDelimiter(line string) bool {
	return dashedDelimiterRe.MatchString(line)
}

// SplitFusedFences separates a closing fence that was emitted on the same
// line as the next opening fence, so the scanner never absorbs a zero-width
// block into surrounding text. Returns the corrected text and whether any
// line was split.
func SplitFusedFences(text string) (string, bool) {
	out := fusedFenceRe.ReplaceAllString(text, "$1\n$2")
	return out, out != text
}

// scanState tracks the scanner position relative to block delimiters.
type scanState int

const (
	stateNone scanState = iota
	stateFenced
	stateDashed
)

// ScanResult holds the ordered segments of a document plus any structural
// warnings raised while scanning.
type ScanResult struct {
	Segments []Segment
	Warnings []Warning
}

// Scan walks the document line by line and carves it into plain-text and
// raw-block segments. A fenced block left open at end of input is kept as a
// block (a synthetic closer is added later); a dashed block left open is
// demoted back to plain text, since without a real closing rule it cannot
// be confidently treated as code.
func Scan(text string) ScanResult {
	var res ScanResult

	var plain []string
	flushPlain := func() {
		if len(plain) > 0 {
			res.Segments = append(res.Segments, Segment{Kind: SegmentPlain, Lines: plain})
			plain = nil
		}
	}

	state := stateNone
	var buf []string

	for _, line := range strings.Split(text, "\n") {
		switch state {
		case stateFenced:
			buf = append(buf, line)
			if IsFenceLine(line) {
				res.Segments = append(res.Segments, Segment{Kind: SegmentFenced, Lines: buf})
				buf = nil
				state = stateNone
			}

		case stateDashed:
			if IsDashedDelimiter(line) {
				res.Segments = append(res.Segments, Segment{Kind: SegmentDashed, Lines: buf})
				buf = nil
				state = stateNone
			} else {
				buf = append(buf, line)
			}

		default:
			switch {
			case IsFenceLine(line):
				flushPlain()
				state = stateFenced
				buf = append(buf, line)
			case IsDashedDelimiter(line):
				flushPlain()
				state = stateDashed
			default:
				plain = append(plain, line)
			}
		}
	}

	switch state {
	case stateFenced:
		res.Warnings = append(res.Warnings, Warning{
			Block:  -1,
			Reason: "unterminated fenced block at end of input",
			Action: "appended a synthetic closing fence",
		})
		buf = append(buf, fenceMarker)
		res.Segments = append(res.Segments, Segment{Kind: SegmentFenced, Lines: buf})
	case stateDashed:
		res.Warnings = append(res.Warnings, Warning{
			Block:  -1,
			Reason: "unterminated dashed block at end of input",
			Action: "re-emitted as plain text",
		})
		plain = append(plain, strings.Repeat("-", 40))
		plain = append(plain, buf...)
	}
	flushPlain()

	return res
}
