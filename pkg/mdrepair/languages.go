package mdrepair

import (
	"regexp"
	"strings"
)

// Sentinel tags assigned by the deconstructor when a block header cannot be
// read as a real language. They never appear in output; the repair policy
// replaces them with the configured default.
const (
	// TagInvalid marks a header token that is neither a known language
	// nor the placeholder word. The token is folded back into the body so
	// no content is lost.
	TagInvalid = "__INVALID__"

	// TagDemo marks a header carrying the placeholder word injected by an
	// earlier repair run.
	TagDemo = "__DEMO__"
)

// knownLanguages is the fixed set of language identifiers accepted as a
// block's first header token. Matching is case-insensitive.
var knownLanguages = map[string]struct{}{
	"c": {}, "cpp": {}, "c++": {}, "python": {}, "py": {},
	"java": {}, "javascript": {}, "js": {}, "html": {}, "css": {},
	"yaml": {}, "bash": {}, "shell": {}, "sh": {}, "sql": {},
	"go": {}, "rust": {}, "typescript": {}, "ts": {}, "markdown": {},
	"json": {}, "xml": {}, "ruby": {}, "php": {},
}

// braceLanguages are the languages whose blocks scope with {} and are
// eligible for brace-depth re-indentation.
var braceLanguages = map[string]struct{}{
	"c": {}, "cpp": {}, "c++": {}, "java": {},
	"javascript": {}, "js": {}, "c#": {}, "cs": {},
}

var identifierRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// IsKnownLanguage reports whether tag names a recognised language,
// ignoring case.
func IsKnownLanguage(tag string) bool {
	_, ok := knownLanguages[strings.ToLower(tag)]
	return ok
}

// IsBraceLanguage reports whether tag belongs to the brace family eligible
// for re-indentation. A multi-word info string is judged by its first token.
func IsBraceLanguage(tag string) bool {
	fields := strings.Fields(tag)
	if len(fields) == 0 {
		return false
	}
	_, ok := braceLanguages[strings.ToLower(fields[0])]
	return ok
}

// isIdentifier reports whether s is a syntactically legal identifier:
// letters, digits, underscore, dot, and dash only.
func isIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// validLanguageToken reports whether token may stand as a block's language
// tag. The empty token is valid (an untagged block).
func validLanguageToken(token string) bool {
	if token == "" {
		return true
	}
	return isIdentifier(token) && IsKnownLanguage(token)
}

// validTitleToken reports whether token may stand as a block's title line.
// Any legal identifier qualifies.
func validTitleToken(token string) bool {
	return token != "" && isIdentifier(token)
}
