package mdrepair

import (
	"fmt"
	"regexp"
	"strings"
)

// Converter artifacts repaired by Normalize, in application order:
// line-continuation backslashes, comment delimiters mangled into
// emphasis-like forms, escaped brackets, and stray bold/italic markup.
var (
	// `*/* text */*` and the other asterisk/slash alternations the
	// converter produces in place of a block comment.
	malformedCommentRe = regexp.MustCompile(
		`(?ms)^[ \t]*(?:\*\s*/\*|\*/\s*\*)\s*(.*?)\s*(?:\*/\s*\*|\*\s*/\*)[ \t]*$`)

	// `*// comment*`: a line comment wrapped in spurious asterisks.
	emphasizedLineCommentRe = regexp.MustCompile(`(?m)^[ \t]*\*(//.*)\*[ \t]*$`)

	// Genuine comments, shielded before emphasis stripping.
	commentRe = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)

	boldRe = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	// Italic pairs whose content is free of Han characters; emphasis
	// around CJK prose is usually intentional.
	italicRe = regexp.MustCompile(`\*([^\p{Han}*]+)\*`)
)

// Normalize cleans a block body of converter artifacts. When nothing
// matches, the body passes through unchanged; normalization never fails.
func Normalize(body string) string {
	body = trailingBackslashRe.ReplaceAllString(body, "")
	body = malformedCommentRe.ReplaceAllString(body, "/* $1 */")
	body = emphasizedLineCommentRe.ReplaceAllString(body, "$1")
	body = strings.ReplaceAll(body, `\[`, "[")
	body = strings.ReplaceAll(body, `\]`, "]")
	return stripEmphasis(body)
}

// stripEmphasis removes bold and italic markup from code while keeping
// genuine comments byte-for-byte intact. Comments are swapped for opaque
// placeholder tokens first, so a Doxygen `/** ... */` is never mistaken
// for emphasis, then restored verbatim afterwards.
func stripEmphasis(body string) string {
	var shielded []string
	body = commentRe.ReplaceAllStringFunc(body, func(comment string) string {
		shielded = append(shielded, comment)
		return commentPlaceholder(len(shielded) - 1)
	})

	body = boldRe.ReplaceAllString(body, "$1")
	body = italicRe.ReplaceAllString(body, "$1")

	for i, comment := range shielded {
		body = strings.Replace(body, commentPlaceholder(i), comment, 1)
	}
	return body
}

func commentPlaceholder(i int) string {
	return fmt.Sprintf("\x00comment:%d\x00", i)
}
