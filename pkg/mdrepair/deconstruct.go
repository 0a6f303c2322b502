package mdrepair

import (
	"regexp"
	"strings"
)

// ParsedBlock is the decomposed form of a raw block segment: an optional
// language tag, an optional title identifier, and the remaining code body.
// Lang is either a known-language identifier, empty, or one of the
// TagInvalid / TagDemo sentinels.
type ParsedBlock struct {
	Lang  string
	Title string
	Body  string
}

// Info renders the fence info string: the language tag followed by the
// title when one is present.
func (p ParsedBlock) Info() string {
	if p.Title == "" {
		return p.Lang
	}
	return p.Lang + " " + p.Title
}

// Tagged reports whether the block carries a usable language tag, as
// opposed to being empty or a sentinel.
func (p ParsedBlock) Tagged() bool {
	return p.Lang != "" && p.Lang != TagInvalid && p.Lang != TagDemo
}

var (
	fenceHeaderRe      = regexp.MustCompile(`^` + "```" + `(\S*)\s*(.*)$`)
	trailingBackslashRe = regexp.MustCompile(`(?m)\\\s*$`)
)

// Deconstruct splits a raw block segment into language tag, title, and code
// body. The segment must be a block segment; plain segments have nothing to
// deconstruct.
//
// No content is ever dropped: header text that fails validation is folded
// back into the body.
func Deconstruct(seg Segment, marker string) ParsedBlock {
	if seg.Kind == SegmentDashed {
		return deconstructDashed(seg.Lines, marker)
	}
	return deconstructFenced(seg.Lines, marker)
}

func deconstructFenced(lines []string, marker string) ParsedBlock {
	lines = trimBlankEdges(lines)
	if len(lines) == 0 {
		return ParsedBlock{}
	}

	var (
		lang      string
		title     string
		codeParts []string
	)

	m := fenceHeaderRe.FindStringSubmatch(lines[0])
	if m != nil {
		first, second := m[1], strings.TrimSpace(m[2])
		switch {
		case validLanguageToken(first):
			lang = first
			if second != "" {
				if lang != "" && validTitleToken(second) {
					title = second
				} else {
					codeParts = append(codeParts, second)
				}
			}
		case strings.EqualFold(first, marker):
			lang = TagDemo
			if second != "" {
				codeParts = append(codeParts, second)
			}
		default:
			lang = TagInvalid
			if full := strings.TrimSpace(first + " " + second); full != "" {
				codeParts = append(codeParts, full)
			}
		}
	} else {
		lang = TagInvalid
		codeParts = append(codeParts, lines[0])
	}

	// Drop the closing fence.
	content := lines[1:]
	if n := len(content); n > 0 && IsFenceLine(content[n-1]) {
		content = content[:n-1]
	}

	if title == "" {
		var promoted string
		lang, promoted, content = promoteFromContent(lang, content, marker)
		title = promoted
	}

	codeParts = append(codeParts, content...)
	return ParsedBlock{Lang: lang, Title: title, Body: strings.Join(codeParts, "\n")}
}

func deconstructDashed(lines []string, marker string) ParsedBlock {
	text := trailingBackslashRe.ReplaceAllString(strings.Join(lines, "\n"), "")
	lines = trimBlankEdges(strings.Split(text, "\n"))

	lang, title, content := promoteFromContent("", lines, marker)
	return ParsedBlock{Lang: lang, Title: title, Body: strings.Join(content, "\n")}
}

// promoteFromContent applies the first-line/second-line promotion rules to
// an untagged block's content: a lone known-language identifier becomes the
// language tag, and when that happens a following lone identifier line
// becomes the title.
//
// A bare identifier that happens to match a language name (a variable named
// "go", say) is always read as a tag. That bias comes with the heuristic;
// there is no grammar to disambiguate with.
func promoteFromContent(lang string, content []string, marker string) (string, string, []string) {
	if lang == "" && len(content) > 0 {
		head := strings.TrimSpace(content[0])
		switch {
		case strings.EqualFold(head, marker):
			lang = TagDemo
			content = content[1:]
		case head != "" && !strings.ContainsAny(head, " \t") && validLanguageToken(head):
			lang = head
			content = content[1:]

			if len(content) > 0 {
				title := strings.TrimSpace(content[0])
				if validTitleToken(title) {
					return lang, title, content[1:]
				}
			}
		}
	}
	return lang, "", content
}

// trimBlankEdges removes leading and trailing blank lines.
func trimBlankEdges(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
